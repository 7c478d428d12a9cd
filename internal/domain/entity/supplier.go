package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Supplier represents a supplier with an append-only delivery and payment
// ledger. There is deliberately no stored balance column: the balance is
// always derived as sum(deliveries.total_price) - sum(payments.amount) so the
// displayed figure can never drift from the underlying log.
type Supplier struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Email     *string        `gorm:"size:255" json:"email,omitempty"`
	Phone     *string        `gorm:"size:50" json:"phone,omitempty"`
	Address   *string        `gorm:"type:text" json:"address,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Deliveries []SupplierDelivery `gorm:"foreignKey:SupplierID" json:"deliveries,omitempty"`
	Payments   []SupplierPayment  `gorm:"foreignKey:SupplierID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new supplier
func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Supplier model
func (Supplier) TableName() string {
	return "suppliers"
}

// SupplierDelivery is one immutable entry in a supplier's delivery ledger
type SupplierDelivery struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SupplierID  uuid.UUID `gorm:"type:uuid;not null;index" json:"supplier_id"`
	ProductName string    `gorm:"size:255;not null" json:"product_name"`
	UnitPrice   int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	UnitType    string    `gorm:"size:50" json:"unit_type"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	TotalPrice  int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt   time.Time `json:"created_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (d SupplierDelivery) MarshalJSON() ([]byte, error) {
	type Alias SupplierDelivery
	return json.Marshal(&struct {
		Alias
		UnitPrice  float64 `json:"unit_price"`
		TotalPrice float64 `json:"total_price"`
	}{
		Alias:      Alias(d),
		UnitPrice:  float64(d.UnitPrice) / 100,
		TotalPrice: float64(d.TotalPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new delivery entry
func (d *SupplierDelivery) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SupplierDelivery model
func (SupplierDelivery) TableName() string {
	return "supplier_deliveries"
}

// SupplierPayment is one immutable entry in a supplier's payment ledger
type SupplierPayment struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SupplierID uuid.UUID `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Amount     int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Method     string    `gorm:"size:50" json:"method"`
	CreatedAt  time.Time `json:"created_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p SupplierPayment) MarshalJSON() ([]byte, error) {
	type Alias SupplierPayment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new payment entry
func (p *SupplierPayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SupplierPayment model
func (SupplierPayment) TableName() string {
	return "supplier_payments"
}
