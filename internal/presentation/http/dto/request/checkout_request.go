package request

import "github.com/google/uuid"

// CheckoutItemRequest is one cart line in a checkout request
type CheckoutItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CheckoutRequest represents a checkout of the current cart
type CheckoutRequest struct {
	Items []CheckoutItemRequest `json:"items" binding:"required,min=1,dive"`
}

// RefundItemRequest selects how many units of one receipt line to refund
type RefundItemRequest struct {
	ReceiptItemID uuid.UUID `json:"receipt_item_id" binding:"required"`
	Quantity      int       `json:"quantity" binding:"min=0"`
}

// RefundRequest represents a refund of a subset of a receipt
type RefundRequest struct {
	Items []RefundItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ReceiptFilterRequest represents receipt filter parameters
type ReceiptFilterRequest struct {
	Search    string `form:"search"`
	Refunded  *bool  `form:"refunded"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
	Cursor    string `form:"cursor"`
	Direction string `form:"direction"`
	Limit     int    `form:"limit"`
}
