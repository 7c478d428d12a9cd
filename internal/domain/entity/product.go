package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a product in the inventory. Stock is kept in two
// counters: ShopQty (front-of-house, consumed first on sale) and StoreQty
// (backroom reserve). TotalQty is recomputed and written together with the
// counters on every stock mutation so it always equals their sum.
type Product struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID    *uuid.UUID     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Slug          string         `gorm:"size:255;unique;not null" json:"slug"`
	Barcode       *string        `gorm:"size:100;uniqueIndex" json:"barcode,omitempty"`
	ShopQty       int            `gorm:"default:0" json:"shop_qty"`
	StoreQty      int            `gorm:"default:0" json:"store_qty"`
	TotalQty      int            `gorm:"default:0" json:"total_qty"`
	QuantityAlert int            `gorm:"default:0" json:"quantity_alert"`
	BuyingPrice   int64          `gorm:"default:0" json:"buying_price"`  // Stored in cents
	SellingPrice  int64          `gorm:"default:0" json:"selling_price"` // Stored in cents
	ExpiryDate    *time.Time     `gorm:"type:date" json:"expiry_date,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// Available returns the total sellable quantity across both counters
func (p *Product) Available() int {
	return p.ShopQty + p.StoreQty
}

// GetBuyingPriceDecimal returns the buying price as a decimal (for display)
func (p *Product) GetBuyingPriceDecimal() float64 {
	return float64(p.BuyingPrice) / 100
}

// GetSellingPriceDecimal returns the selling price as a decimal (for display)
func (p *Product) GetSellingPriceDecimal() float64 {
	return float64(p.SellingPrice) / 100
}

// SetBuyingPriceFromDecimal sets the buying price from a decimal value
func (p *Product) SetBuyingPriceFromDecimal(price float64) {
	p.BuyingPrice = int64(price * 100)
}

// SetSellingPriceFromDecimal sets the selling price from a decimal value
func (p *Product) SetSellingPriceFromDecimal(price float64) {
	p.SellingPrice = int64(price * 100)
}

// ProductJSON is a helper struct for JSON marshaling with decimal prices
type ProductJSON struct {
	ID            uuid.UUID  `json:"id"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	Barcode       *string    `json:"barcode,omitempty"`
	ShopQty       int        `json:"shop_qty"`
	StoreQty      int        `json:"store_qty"`
	TotalQty      int        `json:"total_qty"`
	QuantityAlert int        `json:"quantity_alert"`
	BuyingPrice   float64    `json:"buying_price"`  // Decimal value for JSON
	SellingPrice  float64    `json:"selling_price"` // Decimal value for JSON
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Category      *Category  `json:"category,omitempty"`
}

// MarshalJSON converts Product to JSON with decimal prices
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(ProductJSON{
		ID:            p.ID,
		CategoryID:    p.CategoryID,
		Name:          p.Name,
		Slug:          p.Slug,
		Barcode:       p.Barcode,
		ShopQty:       p.ShopQty,
		StoreQty:      p.StoreQty,
		TotalQty:      p.TotalQty,
		QuantityAlert: p.QuantityAlert,
		BuyingPrice:   p.GetBuyingPriceDecimal(),
		SellingPrice:  p.GetSellingPriceDecimal(),
		ExpiryDate:    p.ExpiryDate,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Category:      p.Category,
	})
}

// Category represents a product category
type Category struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
