package repository

import (
	"context"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/pkg/pagination"
	"github.com/google/uuid"
)

// SupplierRepository defines the interface for supplier data operations.
// Delivery and payment entries are append-only; there are no methods to
// mutate or remove prior ledger entries.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error)
	GetWithLedger(ctx context.Context, id uuid.UUID) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Supplier, int64, error)
	AddDelivery(ctx context.Context, delivery *entity.SupplierDelivery) error
	AddPayment(ctx context.Context, payment *entity.SupplierPayment) error
	// SumDeliveries returns the summed delivery totals (cents) for a supplier
	SumDeliveries(ctx context.Context, supplierID uuid.UUID) (int64, error)
	// SumPayments returns the summed payments (cents) for a supplier
	SumPayments(ctx context.Context, supplierID uuid.UUID) (int64, error)
	// TotalOutstanding returns sum(deliveries) - sum(payments) across all suppliers
	TotalOutstanding(ctx context.Context) (int64, error)
}
