package repository

import (
	"context"
	"time"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/pkg/pagination"
	"github.com/google/uuid"
)

// ReceiptRepository defines the interface for receipt data operations
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Receipt, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ReceiptFilterParams) ([]entity.Receipt, int64, error)
	ListWithCursor(ctx context.Context, params *ReceiptCursorFilterParams) ([]entity.Receipt, error)
	// MarkRefunded sets the refunded guard with a single conditional update
	// (refunded = true only where refunded = false). Returns false when the
	// receipt was already refunded, making double refunds impossible even
	// under concurrent attempts.
	MarkRefunded(ctx context.Context, id uuid.UUID) (bool, error)
	// SalesTotals returns the receipt count and summed totals (cents) in the
	// half-open interval [from, to).
	SalesTotals(ctx context.Context, from, to time.Time) (int64, int64, error)
	// DailySales aggregates receipts per calendar day in [from, to).
	DailySales(ctx context.Context, from, to time.Time) ([]DailySalesRow, error)
}

// ReceiptFilterParams contains filtering parameters for receipt queries
type ReceiptFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	CashierID  *uuid.UUID
	Refunded   *bool
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// ReceiptCursorFilterParams contains cursor-based filtering for receipt queries
type ReceiptCursorFilterParams struct {
	Cursor    *pagination.CursorParams
	Search    string
	CashierID *uuid.UUID
	Refunded  *bool
}

// DailySalesRow is one day of aggregated sales
type DailySalesRow struct {
	Day      string `json:"day"`
	Receipts int64  `json:"receipts"`
	Total    int64  `json:"total"` // cents
}

// RefundRepository defines the interface for refund log operations.
// Refund records are append-only: there are no update or delete methods.
type RefundRepository interface {
	Create(ctx context.Context, record *entity.RefundRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.RefundRecord, error)
	ListByReceipt(ctx context.Context, receiptID uuid.UUID) ([]entity.RefundRecord, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.RefundRecord, int64, error)
}
