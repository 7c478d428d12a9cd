package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefundRecord is an append-only log entry capturing which receipt was
// refunded, by whom, and which line-item subset with what quantities.
// Records are never updated or deleted.
type RefundRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptID uuid.UUID `gorm:"type:uuid;not null;index" json:"receipt_id"`
	ActorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"actor_id"`
	Total     int64     `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Receipt Receipt      `gorm:"foreignKey:ReceiptID" json:"-"`
	Actor   User         `gorm:"foreignKey:ActorID" json:"-"`
	Items   []RefundItem `gorm:"foreignKey:RefundID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (r RefundRecord) MarshalJSON() ([]byte, error) {
	type Alias RefundRecord
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(r),
		Total: float64(r.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new refund record
func (r *RefundRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the RefundRecord model
func (RefundRecord) TableName() string {
	return "refunds"
}

// RefundItem captures one refunded line of a receipt
type RefundItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RefundID      uuid.UUID `gorm:"type:uuid;not null;index" json:"refund_id"`
	ReceiptItemID uuid.UUID `gorm:"type:uuid;not null;index" json:"receipt_item_id"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName   string    `gorm:"size:255;not null" json:"product_name"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	Amount        int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt     time.Time `json:"created_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (ri RefundItem) MarshalJSON() ([]byte, error) {
	type Alias RefundItem
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(ri),
		Amount: float64(ri.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new refund item
func (ri *RefundItem) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the RefundItem model
func (RefundItem) TableName() string {
	return "refund_items"
}
