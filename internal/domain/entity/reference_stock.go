package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReferenceStock is a shadow counter tracked one-to-one with a product. It is
// decremented on sale and incremented on refund and stock additions, always in
// the same transaction as the product counters. It is never consulted for
// stock-sufficiency checks; its only purpose is reconciliation against
// TotalQty to surface drift.
type ReferenceStock struct {
	ProductID uuid.UUID `gorm:"type:uuid;primary_key" json:"product_id"`
	Quantity  int       `gorm:"default:0" json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the ReferenceStock model
func (ReferenceStock) TableName() string {
	return "reference_stocks"
}
