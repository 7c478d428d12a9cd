package service

import (
	"context"
	"time"

	"github.com/dukahub/dukapos-api/internal/domain/authz"
	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/pkg/apperror"
	"github.com/dukahub/dukapos-api/pkg/pagination"
	"github.com/dukahub/dukapos-api/pkg/utils"
	"github.com/google/uuid"
)

// ProductService handles product catalog and stock operations
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	refRepo      repository.ReferenceStockRepository
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	refRepo repository.ReferenceStockRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		refRepo:      refRepo,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name          string
	CategoryID    *uuid.UUID
	Barcode       *string
	ShopQty       int
	StoreQty      int
	QuantityAlert int
	BuyingPrice   float64
	SellingPrice  float64
	ExpiryDate    *time.Time
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	Name          *string
	CategoryID    *uuid.UUID
	Barcode       *string
	QuantityAlert *int
	BuyingPrice   *float64
	SellingPrice  *float64
	ExpiryDate    *time.Time
}

// StockTakeInput sets both counters to freshly counted values
type StockTakeInput struct {
	ShopQty  int
	StoreQty int
}

// AddStockInput adds arriving goods to the counters
type AddStockInput struct {
	ShopQty  int
	StoreQty int
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, actor Actor, input *CreateProductInput) (*entity.Product, error) {
	if !authz.Allowed(actor.Role, authz.ActionManageProducts) {
		return nil, apperror.ErrForbidden
	}
	if input.ShopQty < 0 || input.StoreQty < 0 {
		return nil, apperror.NewBadRequestError("Stock quantities cannot be negative")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}

	slug := utils.Slugify(input.Name)
	existing, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A product with this name already exists")
	}

	product := &entity.Product{
		Name:          input.Name,
		Slug:          slug,
		CategoryID:    input.CategoryID,
		Barcode:       input.Barcode,
		ShopQty:       input.ShopQty,
		StoreQty:      input.StoreQty,
		TotalQty:      input.ShopQty + input.StoreQty,
		QuantityAlert: input.QuantityAlert,
		ExpiryDate:    input.ExpiryDate,
	}
	product.SetBuyingPriceFromDecimal(input.BuyingPrice)
	product.SetSellingPriceFromDecimal(input.SellingPrice)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct returns one product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductByBarcode returns one product by barcode, used by the POS scanner
func (s *ProductService) GetProductByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	product, err := s.productRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProduct updates catalog fields. Stock counters are deliberately not
// editable here; they only move through stock take, stock add, checkout and
// refund.
func (s *ProductService) UpdateProduct(ctx context.Context, actor Actor, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	if !authz.Allowed(actor.Role, authz.ActionManageProducts) {
		return nil, apperror.ErrForbidden
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil && *input.Name != product.Name {
		slug := utils.Slugify(*input.Name)
		existing, err := s.productRepo.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != product.ID {
			return nil, apperror.NewConflictError("A product with this name already exists")
		}
		product.Name = *input.Name
		product.Slug = slug
	}
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
		product.CategoryID = input.CategoryID
	}
	if input.Barcode != nil {
		product.Barcode = input.Barcode
	}
	if input.QuantityAlert != nil {
		product.QuantityAlert = *input.QuantityAlert
	}
	if input.BuyingPrice != nil {
		product.SetBuyingPriceFromDecimal(*input.BuyingPrice)
	}
	if input.SellingPrice != nil {
		product.SetSellingPriceFromDecimal(*input.SellingPrice)
	}
	if input.ExpiryDate != nil {
		product.ExpiryDate = input.ExpiryDate
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct removes a product from the catalog
func (s *ProductService) DeleteProduct(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !authz.Allowed(actor.Role, authz.ActionManageProducts) {
		return apperror.ErrForbidden
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}

	return s.productRepo.Delete(ctx, id)
}

// ListProducts returns products matching the filter
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	params.Pagination.Validate()
	return pagination.NewPaginatedResult(products,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}

// GetLowStock returns products at or below their alert threshold
func (s *ProductService) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}

// StockTake overwrites both counters with counted values
func (s *ProductService) StockTake(ctx context.Context, actor Actor, id uuid.UUID, input *StockTakeInput) (*entity.Product, error) {
	if !authz.Allowed(actor.Role, authz.ActionAdjustStock) {
		return nil, apperror.ErrForbidden
	}
	if input.ShopQty < 0 || input.StoreQty < 0 {
		return nil, apperror.NewBadRequestError("Stock quantities cannot be negative")
	}

	if err := s.productRepo.SetStockLevels(ctx, id, input.ShopQty, input.StoreQty); err != nil {
		return nil, err
	}

	return s.GetProduct(ctx, id)
}

// AddStock records arriving goods against the counters
func (s *ProductService) AddStock(ctx context.Context, actor Actor, id uuid.UUID, input *AddStockInput) (*entity.Product, error) {
	if !authz.Allowed(actor.Role, authz.ActionAdjustStock) {
		return nil, apperror.ErrForbidden
	}
	if input.ShopQty < 0 || input.StoreQty < 0 {
		return nil, apperror.NewBadRequestError("Stock quantities cannot be negative")
	}
	if input.ShopQty == 0 && input.StoreQty == 0 {
		return nil, apperror.NewBadRequestError("Nothing to add")
	}

	if err := s.productRepo.AddStock(ctx, id, input.ShopQty, input.StoreQty); err != nil {
		return nil, err
	}

	return s.GetProduct(ctx, id)
}

// StockReconciliation lists products whose reference stock counter has
// drifted from the live total. An empty list means the two ledgers agree.
func (s *ProductService) StockReconciliation(ctx context.Context, actor Actor) ([]repository.StockMismatch, error) {
	if !authz.Allowed(actor.Role, authz.ActionAdjustStock) {
		return nil, apperror.ErrForbidden
	}
	return s.refRepo.ListMismatched(ctx)
}

// CreateCategory creates a new product category
func (s *ProductService) CreateCategory(ctx context.Context, actor Actor, name string) (*entity.Category, error) {
	if !authz.Allowed(actor.Role, authz.ActionManageProducts) {
		return nil, apperror.ErrForbidden
	}

	slug := utils.Slugify(name)
	existing, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A category with this name already exists")
	}

	category := &entity.Category{Name: name, Slug: slug}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories returns categories matching the search
func (s *ProductService) ListCategories(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Category], error) {
	categories, total, err := s.categoryRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(categories,
		pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// DeleteCategory removes a category
func (s *ProductService) DeleteCategory(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !authz.Allowed(actor.Role, authz.ActionManageProducts) {
		return apperror.ErrForbidden
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}

	return s.categoryRepo.Delete(ctx, id)
}
