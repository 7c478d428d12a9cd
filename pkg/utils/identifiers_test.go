package utils

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Maize Flour 2kg", "maize-flour-2kg"},
		{"  Spaced  Out  ", "spaced-out"},
		{"Café & Bar!", "caf-bar"},
		{"already-a-slug", "already-a-slug"},
		{"UPPER CASE", "upper-case"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGeneratedNumbersArePrefixedAndUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		no := GenerateReceiptNo()
		if !strings.HasPrefix(no, "RCT-") || len(no) != 12 {
			t.Fatalf("receipt no %q has wrong shape", no)
		}
		if seen[no] {
			t.Fatalf("duplicate receipt no %q", no)
		}
		seen[no] = true
	}
	if !strings.HasPrefix(GenerateOrderNo(), "ORD-") {
		t.Error("order no missing ORD- prefix")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("password not hashed")
	}
	if !CheckPasswordHash("s3cret", hash) {
		t.Error("correct password rejected")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("wrong password accepted")
	}
}
