package request

import (
	"time"

	"github.com/google/uuid"
)

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	CategoryID    *uuid.UUID `json:"category_id"`
	Name          string     `json:"name" binding:"required,min=2,max=255"`
	Barcode       *string    `json:"barcode" binding:"omitempty,max=100"`
	ShopQty       int        `json:"shop_qty" binding:"min=0"`
	StoreQty      int        `json:"store_qty" binding:"min=0"`
	QuantityAlert int        `json:"quantity_alert" binding:"min=0"`
	BuyingPrice   float64    `json:"buying_price" binding:"min=0"`
	SellingPrice  float64    `json:"selling_price" binding:"min=0"`
	ExpiryDate    *time.Time `json:"expiry_date"`
}

// UpdateProductRequest represents a product update request. Stock counters
// are absent on purpose; they move only through the stock endpoints.
type UpdateProductRequest struct {
	CategoryID    *uuid.UUID `json:"category_id"`
	Name          *string    `json:"name" binding:"omitempty,min=2,max=255"`
	Barcode       *string    `json:"barcode" binding:"omitempty,max=100"`
	QuantityAlert *int       `json:"quantity_alert" binding:"omitempty,min=0"`
	BuyingPrice   *float64   `json:"buying_price" binding:"omitempty,min=0"`
	SellingPrice  *float64   `json:"selling_price" binding:"omitempty,min=0"`
	ExpiryDate    *time.Time `json:"expiry_date"`
}

// StockTakeRequest sets both counters to counted values
type StockTakeRequest struct {
	ShopQty  int `json:"shop_qty" binding:"min=0"`
	StoreQty int `json:"store_qty" binding:"min=0"`
}

// AddStockRequest adds arriving goods to the counters
type AddStockRequest struct {
	ShopQty  int `json:"shop_qty" binding:"min=0"`
	StoreQty int `json:"store_qty" binding:"min=0"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	LowStock   bool   `form:"low_stock"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}
