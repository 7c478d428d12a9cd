package pagination

import (
	"testing"
	"time"
)

func TestCursorRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	encoded := EncodeCursor("abc-123", now)

	params := &CursorParams{Cursor: encoded}
	cursor, err := params.DecodeCursor()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cursor.ID != "abc-123" {
		t.Errorf("id = %q, want abc-123", cursor.ID)
	}
	if !cursor.CreatedAt.Equal(now) {
		t.Errorf("created_at = %v, want %v", cursor.CreatedAt, now)
	}

	if _, err := (&CursorParams{Cursor: "not base64!!"}).DecodeCursor(); err == nil {
		t.Error("garbage cursor accepted")
	}

	empty, err := (&CursorParams{}).DecodeCursor()
	if err != nil || empty != nil {
		t.Errorf("empty cursor = %v, %v; want nil, nil", empty, err)
	}
}

func TestCursorParamsValidate(t *testing.T) {
	p := &CursorParams{}
	p.Validate()
	if p.Limit != 15 || p.Direction != CursorDirectionNext {
		t.Errorf("defaults = limit %d direction %q", p.Limit, p.Direction)
	}

	p = &CursorParams{Limit: 500}
	p.Validate()
	if p.Limit != 100 {
		t.Errorf("limit capped to %d, want 100", p.Limit)
	}
}

func TestNewCursorPaginationDetectsMore(t *testing.T) {
	type row struct {
		id string
		at time.Time
	}
	base := time.Now()
	rows := []row{
		{"a", base},
		{"b", base.Add(time.Second)},
		{"c", base.Add(2 * time.Second)},
	}

	// Three rows fetched against a limit of two means another page exists
	meta, items := NewCursorPagination(rows, 2,
		func(r row) string { return r.id },
		func(r row) time.Time { return r.at },
	)
	if !meta.HasNext {
		t.Error("HasNext = false, want true")
	}
	if len(items) != 2 {
		t.Fatalf("items trimmed to %d, want 2", len(items))
	}
	if meta.NextCursor == nil {
		t.Fatal("missing next cursor")
	}
	decoded, err := (&CursorParams{Cursor: *meta.NextCursor}).DecodeCursor()
	if err != nil {
		t.Fatalf("decode next cursor: %v", err)
	}
	if decoded.ID != "b" {
		t.Errorf("next cursor id = %q, want b (last returned row)", decoded.ID)
	}

	// Exactly limit rows means this is the final page
	meta, _ = NewCursorPagination(rows[:2], 2,
		func(r row) string { return r.id },
		func(r row) time.Time { return r.at },
	)
	if meta.HasNext {
		t.Error("HasNext = true on final page")
	}
}

func TestPaginationMeta(t *testing.T) {
	p := NewPagination(2, 10, 35)
	if p.TotalPages != 4 {
		t.Errorf("total pages = %d, want 4", p.TotalPages)
	}
	if p.CurrentPage != 2 || p.PerPage != 10 || p.Total != 35 {
		t.Errorf("meta = %+v", p)
	}
}
