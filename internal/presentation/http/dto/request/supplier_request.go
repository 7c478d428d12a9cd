package request

// CreateSupplierRequest represents a supplier creation request
type CreateSupplierRequest struct {
	Name    string  `json:"name" binding:"required,min=2,max=255"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Address *string `json:"address"`
}

// UpdateSupplierRequest represents a supplier update request
type UpdateSupplierRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=2,max=255"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Address *string `json:"address"`
}

// AddDeliveryRequest records goods received from a supplier
type AddDeliveryRequest struct {
	ProductName string  `json:"product_name" binding:"required,min=1,max=255"`
	UnitPrice   float64 `json:"unit_price" binding:"min=0"`
	UnitType    string  `json:"unit_type" binding:"omitempty,max=50"`
	Quantity    int     `json:"quantity" binding:"required,min=1"`
}

// AddPaymentRequest records a payment made to a supplier
type AddPaymentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Method string  `json:"method" binding:"omitempty,max=50"`
}
