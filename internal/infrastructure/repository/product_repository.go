package repository

import (
	"context"
	"errors"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	domainRepo "github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

// Create inserts the product together with its reference stock row so the
// two counters start in agreement.
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		return tx.Create(&entity.ReferenceStock{
			ProductID: product.ID,
			Quantity:  product.ShopQty + product.StoreQty,
		}).Error
	})
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

// GetByIDs retrieves multiple products by their IDs in a single query
func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	if len(ids) == 0 {
		return []entity.Product{}, nil
	}
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id IN ?", ids).
		Find(&products).Error
	return products, err
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		First(&product, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "barcode = ?", barcode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id).Error
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Product{})

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR barcode ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}

	if params.LowStock {
		query = query.Where("total_qty <= quantity_alert")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder != "" && (params.SortOrder == "ASC" || params.SortOrder == "asc") {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Category").
		Order(sortBy + " " + sortOrder).
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where("total_qty <= quantity_alert").
		Preload("Category").
		Find(&products).Error
	return products, err
}

// SetStockLevels sets both counters absolutely (stock take) and realigns the
// reference stock counter to the counted quantity in the same transaction.
// total_qty is written alongside the counters so the sum invariant holds.
func (r *productRepository) SetStockLevels(ctx context.Context, id uuid.UUID, shopQty, storeQty int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Product{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"shop_qty":  shopQty,
				"store_qty": storeQty,
				"total_qty": shopQty + storeQty,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return upsertReferenceQuantity(tx, id, shopQty+storeQty)
	})
}

// AddStock atomically increments the counters when goods arrive
func (r *productRepository) AddStock(ctx context.Context, id uuid.UUID, shopDelta, storeDelta int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Product{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"shop_qty":  gorm.Expr("shop_qty + ?", shopDelta),
				"store_qty": gorm.Expr("store_qty + ?", storeDelta),
				"total_qty": gorm.Expr("shop_qty + store_qty + ?", shopDelta+storeDelta),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return incrementReferenceQuantity(tx, id, shopDelta+storeDelta)
	})
}

// SellStockBatch consumes stock for a sale. Each product is updated with a
// single conditional statement: the WHERE clause guards total sufficiency so
// concurrent checkouts cannot interleave a lost update, and the CASE split
// draws from shop_qty first with the remainder taken from store_qty. All SET
// expressions see the pre-update row, so total_qty lands on the new sum.
// If any product is short the whole transaction rolls back and the shortages
// are reported.
func (r *productRepository) SellStockBatch(ctx context.Context, quantities map[uuid.UUID]int) ([]domainRepo.StockShortage, error) {
	if len(quantities) == 0 {
		return nil, nil
	}

	var shortages []domainRepo.StockShortage

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, qty := range quantities {
			result := tx.Model(&entity.Product{}).
				Where("id = ? AND shop_qty + store_qty >= ?", id, qty).
				Updates(map[string]interface{}{
					"shop_qty":  gorm.Expr("CASE WHEN shop_qty >= ? THEN shop_qty - ? ELSE 0 END", qty, qty),
					"store_qty": gorm.Expr("CASE WHEN shop_qty >= ? THEN store_qty ELSE store_qty - (? - shop_qty) END", qty, qty),
					"total_qty": gorm.Expr("shop_qty + store_qty - ?", qty),
				})

			if result.Error != nil {
				return result.Error
			}

			if result.RowsAffected == 0 {
				var product entity.Product
				shortage := domainRepo.StockShortage{ProductID: id, Requested: qty}
				if err := tx.Select("name", "shop_qty", "store_qty").
					First(&product, "id = ?", id).Error; err == nil {
					shortage.Name = product.Name
					shortage.Available = product.ShopQty + product.StoreQty
				}
				shortage.Short = qty - shortage.Available
				shortages = append(shortages, shortage)
				continue
			}

			// Shadow counter moves in the same transaction. A missing row is
			// not an error here; the drift surfaces in reconciliation.
			if err := incrementReferenceQuantity(tx, id, -qty); err != nil {
				return err
			}
		}

		// Any shortage rolls back every decrement in this transaction
		if len(shortages) > 0 {
			return gorm.ErrInvalidTransaction
		}

		return nil
	})

	// The sentinel only forced the rollback; shortages are the real outcome
	if errors.Is(err, gorm.ErrInvalidTransaction) && len(shortages) > 0 {
		return shortages, nil
	}

	return shortages, err
}

// RestockShopBatch returns refunded quantities to the shop counter only,
// mirroring the sale's shop-first deduction.
func (r *productRepository) RestockShopBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	if len(increments) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, qty := range increments {
			if err := tx.Model(&entity.Product{}).
				Where("id = ?", id).
				Updates(map[string]interface{}{
					"shop_qty":  gorm.Expr("shop_qty + ?", qty),
					"total_qty": gorm.Expr("shop_qty + store_qty + ?", qty),
				}).Error; err != nil {
				return err
			}
			if err := incrementReferenceQuantity(tx, id, qty); err != nil {
				return err
			}
		}
		return nil
	})
}

// upsertReferenceQuantity sets the shadow counter absolutely, creating the
// row if it does not exist yet.
func upsertReferenceQuantity(tx *gorm.DB, productID uuid.UUID, quantity int) error {
	result := tx.Model(&entity.ReferenceStock{}).
		Where("product_id = ?", productID).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return tx.Create(&entity.ReferenceStock{ProductID: productID, Quantity: quantity}).Error
	}
	return nil
}

// incrementReferenceQuantity applies a delta to the shadow counter. A missing
// row is created on positive deltas and skipped on negative ones.
func incrementReferenceQuantity(tx *gorm.DB, productID uuid.UUID, delta int) error {
	result := tx.Model(&entity.ReferenceStock{}).
		Where("product_id = ?", productID).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 && delta > 0 {
		return tx.Create(&entity.ReferenceStock{ProductID: productID, Quantity: delta}).Error
	}
	return nil
}

type referenceStockRepository struct {
	db *gorm.DB
}

// NewReferenceStockRepository creates a new reference stock repository
func NewReferenceStockRepository(db *gorm.DB) domainRepo.ReferenceStockRepository {
	return &referenceStockRepository{db: db}
}

func (r *referenceStockRepository) Get(ctx context.Context, productID uuid.UUID) (*entity.ReferenceStock, error) {
	var ref entity.ReferenceStock
	err := r.db.WithContext(ctx).First(&ref, "product_id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ref, err
}

func (r *referenceStockRepository) ListMismatched(ctx context.Context) ([]domainRepo.StockMismatch, error) {
	var mismatches []domainRepo.StockMismatch
	err := r.db.WithContext(ctx).
		Table("products").
		Select("products.id AS product_id, products.name, products.total_qty, reference_stocks.quantity AS reference_qty").
		Joins("JOIN reference_stocks ON reference_stocks.product_id = products.id").
		Where("products.deleted_at IS NULL AND products.total_qty <> reference_stocks.quantity").
		Scan(&mismatches).Error
	return mismatches, err
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) domainRepo.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).First(&category, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Category{}, "id = ?", id).Error
}

func (r *categoryRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Category, int64, error) {
	var categories []entity.Category
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Category{})

	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&categories).Error

	return categories, total, err
}
