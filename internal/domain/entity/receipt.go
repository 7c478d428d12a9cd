package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Receipt represents a completed direct sale. It is created once at checkout;
// the only field ever patched afterwards is the Refunded guard, which is set
// with an atomic conditional update so a receipt can be refunded at most once.
type Receipt struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNo string         `gorm:"size:100;unique;not null" json:"invoice_no"`
	CashierID uuid.UUID      `gorm:"type:uuid;not null;index" json:"cashier_id"`
	Total     int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Refunded  bool           `gorm:"default:false" json:"refunded"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Cashier User          `gorm:"foreignKey:CashierID" json:"-"`
	Items   []ReceiptItem `gorm:"foreignKey:ReceiptID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (r Receipt) MarshalJSON() ([]byte, error) {
	type Alias Receipt
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(r),
		Total: float64(r.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// GetTotalDecimal returns the total as a decimal
func (r *Receipt) GetTotalDecimal() float64 {
	return float64(r.Total) / 100
}

// ReceiptItem represents a line item on a receipt. Product name and barcode
// are snapshotted at sale time so the receipt stays readable even if the
// product is later renamed or deleted.
type ReceiptItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"receipt_id"`
	ProductID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string         `gorm:"size:255;not null" json:"product_name"`
	Barcode     *string        `gorm:"size:100" json:"barcode,omitempty"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	UnitPrice   int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	SubTotal    int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (ri ReceiptItem) MarshalJSON() ([]byte, error) {
	type Alias ReceiptItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		SubTotal  float64 `json:"sub_total"`
	}{
		Alias:     Alias(ri),
		UnitPrice: float64(ri.UnitPrice) / 100,
		SubTotal:  float64(ri.SubTotal) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new receipt item
func (ri *ReceiptItem) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReceiptItem model
func (ReceiptItem) TableName() string {
	return "receipt_items"
}
