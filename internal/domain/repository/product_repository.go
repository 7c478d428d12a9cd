package repository

import (
	"context"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/pkg/pagination"
	"github.com/google/uuid"
)

// StockShortage describes a product that could not satisfy a requested sale
// quantity, with the exact amount missing.
type StockShortage struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Requested int       `json:"requested"`
	Available int       `json:"available"`
	Short     int       `json:"short"`
}

// StockMismatch describes a product whose reference stock counter disagrees
// with its total quantity.
type StockMismatch struct {
	ProductID    uuid.UUID `json:"product_id"`
	Name         string    `json:"name"`
	TotalQty     int       `json:"total_qty"`
	ReferenceQty int       `json:"reference_qty"`
}

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	GetLowStock(ctx context.Context) ([]entity.Product, error)
	// SetStockLevels sets both counters absolutely (stock take), recomputes
	// total_qty and realigns the reference stock counter in one transaction.
	SetStockLevels(ctx context.Context, id uuid.UUID, shopQty, storeQty int) error
	// AddStock atomically increments the counters (goods arriving), keeping
	// total_qty and the reference stock counter in step.
	AddStock(ctx context.Context, id uuid.UUID, shopDelta, storeDelta int) error
	// SellStockBatch atomically consumes stock for a sale, shop counter first
	// with the remainder drawn from the store counter, guarded by
	// shop_qty + store_qty >= qty so concurrent sales cannot oversell.
	// The reference stock counter is decremented in the same transaction.
	// On any shortage the whole transaction rolls back and the shortages are
	// returned with a nil error.
	SellStockBatch(ctx context.Context, quantities map[uuid.UUID]int) ([]StockShortage, error)
	// RestockShopBatch atomically returns refunded quantities to the shop
	// counter only, incrementing the reference stock counter alongside.
	RestockShopBatch(ctx context.Context, increments map[uuid.UUID]int) error
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	CategoryID *uuid.UUID
	LowStock   bool
	SortBy     string
	SortOrder  string
}

// ReferenceStockRepository defines the interface for reference stock reads
type ReferenceStockRepository interface {
	Get(ctx context.Context, productID uuid.UUID) (*entity.ReferenceStock, error)
	// ListMismatched returns products whose reference counter has drifted
	// from total_qty.
	ListMismatched(ctx context.Context) ([]StockMismatch, error)
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Category, int64, error)
}
