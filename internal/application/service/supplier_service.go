package service

import (
	"context"

	"github.com/dukahub/dukapos-api/internal/domain/authz"
	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/pkg/apperror"
	"github.com/dukahub/dukapos-api/pkg/pagination"
	"github.com/google/uuid"
)

// SupplierService handles suppliers and their append-only ledgers
type SupplierService struct {
	supplierRepo repository.SupplierRepository
}

// NewSupplierService creates a new supplier service
func NewSupplierService(supplierRepo repository.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

// CreateSupplierInput represents the create supplier input
type CreateSupplierInput struct {
	Name    string
	Email   *string
	Phone   *string
	Address *string
}

// UpdateSupplierInput represents the update supplier input
type UpdateSupplierInput struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

// AddDeliveryInput records goods received from a supplier
type AddDeliveryInput struct {
	ProductName string
	UnitPrice   float64
	UnitType    string
	Quantity    int
}

// AddPaymentInput records a payment made to a supplier
type AddPaymentInput struct {
	Amount float64
	Method string
}

// SupplierLedger is a supplier with its full ledger and the derived balance.
// The balance is computed from the entries on every read; it is never stored.
type SupplierLedger struct {
	Supplier        *entity.Supplier `json:"supplier"`
	TotalDeliveries float64          `json:"total_deliveries"`
	TotalPayments   float64          `json:"total_payments"`
	Balance         float64          `json:"balance"`
}

// CreateSupplier creates a new supplier
func (s *SupplierService) CreateSupplier(ctx context.Context, actor Actor, input *CreateSupplierInput) (*entity.Supplier, error) {
	if !authz.Allowed(actor.Role, authz.ActionManageSuppliers) {
		return nil, apperror.ErrForbidden
	}
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Supplier name is required")
	}

	supplier := &entity.Supplier{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
	}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// UpdateSupplier updates supplier contact details
func (s *SupplierService) UpdateSupplier(ctx context.Context, actor Actor, id uuid.UUID, input *UpdateSupplierInput) (*entity.Supplier, error) {
	if !authz.Allowed(actor.Role, authz.ActionManageSuppliers) {
		return nil, apperror.ErrForbidden
	}

	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	if input.Name != nil {
		supplier.Name = *input.Name
	}
	if input.Email != nil {
		supplier.Email = input.Email
	}
	if input.Phone != nil {
		supplier.Phone = input.Phone
	}
	if input.Address != nil {
		supplier.Address = input.Address
	}

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// ListSuppliers returns suppliers matching the search
func (s *SupplierService) ListSuppliers(ctx context.Context, actor Actor, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Supplier], error) {
	if !authz.Allowed(actor.Role, authz.ActionManageSuppliers) {
		return nil, apperror.ErrForbidden
	}

	suppliers, total, err := s.supplierRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(suppliers,
		pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// GetLedger returns a supplier with every delivery and payment entry and the
// derived balance: sum of delivery totals minus sum of payments.
func (s *SupplierService) GetLedger(ctx context.Context, actor Actor, id uuid.UUID) (*SupplierLedger, error) {
	if !authz.Allowed(actor.Role, authz.ActionManageSuppliers) {
		return nil, apperror.ErrForbidden
	}

	supplier, err := s.supplierRepo.GetWithLedger(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	deliveries, err := s.supplierRepo.SumDeliveries(ctx, id)
	if err != nil {
		return nil, err
	}
	payments, err := s.supplierRepo.SumPayments(ctx, id)
	if err != nil {
		return nil, err
	}

	return &SupplierLedger{
		Supplier:        supplier,
		TotalDeliveries: float64(deliveries) / 100,
		TotalPayments:   float64(payments) / 100,
		Balance:         float64(deliveries-payments) / 100,
	}, nil
}

// AddDelivery appends a delivery entry to a supplier's ledger. The entry
// total is computed from unit price and quantity at write time and never
// changes afterwards.
func (s *SupplierService) AddDelivery(ctx context.Context, actor Actor, supplierID uuid.UUID, input *AddDeliveryInput) (*entity.SupplierDelivery, error) {
	if !authz.Allowed(actor.Role, authz.ActionManageSuppliers) {
		return nil, apperror.ErrForbidden
	}
	if input.Quantity <= 0 {
		return nil, apperror.NewBadRequestError("Delivery quantity must be positive")
	}
	if input.UnitPrice < 0 {
		return nil, apperror.NewBadRequestError("Unit price cannot be negative")
	}

	supplier, err := s.supplierRepo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	unitPriceCents := int64(input.UnitPrice * 100)
	delivery := &entity.SupplierDelivery{
		SupplierID:  supplierID,
		ProductName: input.ProductName,
		UnitPrice:   unitPriceCents,
		UnitType:    input.UnitType,
		Quantity:    input.Quantity,
		TotalPrice:  unitPriceCents * int64(input.Quantity),
	}
	if err := s.supplierRepo.AddDelivery(ctx, delivery); err != nil {
		return nil, err
	}
	return delivery, nil
}

// AddPayment appends a payment entry to a supplier's ledger
func (s *SupplierService) AddPayment(ctx context.Context, actor Actor, supplierID uuid.UUID, input *AddPaymentInput) (*entity.SupplierPayment, error) {
	if !authz.Allowed(actor.Role, authz.ActionManageSuppliers) {
		return nil, apperror.ErrForbidden
	}
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}

	supplier, err := s.supplierRepo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	payment := &entity.SupplierPayment{
		SupplierID: supplierID,
		Amount:     int64(input.Amount * 100),
		Method:     input.Method,
	}
	if err := s.supplierRepo.AddPayment(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}
