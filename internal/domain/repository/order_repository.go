package repository

import (
	"context"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/dukahub/dukapos-api/pkg/pagination"
	"github.com/google/uuid"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetByOrderNo(ctx context.Context, orderNo string) (*entity.Order, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	// UpdateStatusCAS transitions the status with a compare-and-set
	// (WHERE status = from), so concurrent transitions cannot skip a step.
	// Returns false when the order was not in the expected status.
	UpdateStatusCAS(ctx context.Context, id uuid.UUID, from, to enum.OrderStatus) (bool, error)
	CountByStatus(ctx context.Context, status enum.OrderStatus) (int64, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination   *pagination.PaginationParams
	Search       string
	Status       *enum.OrderStatus
	CompanyEmail string // exact-match filter; set for company accounts
	SortBy       string
	SortOrder    string
}
