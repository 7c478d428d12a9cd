package service

import (
	"context"
	"fmt"

	"github.com/dukahub/dukapos-api/internal/domain/authz"
	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/pkg/apperror"
	"github.com/dukahub/dukapos-api/pkg/utils"
	"github.com/google/uuid"
)

// CheckoutService handles cart checkout for both direct sales and company
// orders
type CheckoutService struct {
	productRepo repository.ProductRepository
	receiptRepo repository.ReceiptRepository
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	productRepo repository.ProductRepository,
	receiptRepo repository.ReceiptRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
) *CheckoutService {
	return &CheckoutService{
		productRepo: productRepo,
		receiptRepo: receiptRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
	}
}

// CheckoutItemInput is one cart line at checkout
type CheckoutItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CheckoutInput represents the checkout request
type CheckoutInput struct {
	Items []CheckoutItemInput
}

// CheckoutResult carries the outcome of a checkout: exactly one of Receipt
// (direct sale) or Order (company account) is set.
type CheckoutResult struct {
	Receipt *entity.Receipt `json:"receipt,omitempty"`
	Order   *entity.Order   `json:"order,omitempty"`
}

// Checkout completes a sale for the current cart. For company accounts an
// order is created with no stock movement. For everyone else the receipt is
// written first and stock is decremented afterwards, so a receipt always
// exists before any counter moves; if the decrement fails the receipt is
// removed again and the checkout reports the shortage with no stock change.
func (s *CheckoutService) Checkout(ctx context.Context, actor Actor, input *CheckoutInput) (*CheckoutResult, error) {
	if actor.Role == enum.RoleCompany {
		if !authz.Allowed(actor.Role, authz.ActionPlaceOrder) {
			return nil, apperror.ErrForbidden
		}
		order, err := s.placeOrder(ctx, actor, input)
		if err != nil {
			return nil, err
		}
		return &CheckoutResult{Order: order}, nil
	}

	if !authz.Allowed(actor.Role, authz.ActionCheckout) {
		return nil, apperror.ErrForbidden
	}

	receipt, err := s.directSale(ctx, actor, input)
	if err != nil {
		return nil, err
	}
	return &CheckoutResult{Receipt: receipt}, nil
}

func (s *CheckoutService) directSale(ctx context.Context, actor Actor, input *CheckoutInput) (*entity.Receipt, error) {
	lines, quantities, total, err := s.buildLines(ctx, input)
	if err != nil {
		return nil, err
	}

	receipt := &entity.Receipt{
		InvoiceNo: utils.GenerateReceiptNo(),
		CashierID: actor.ID,
		Total:     total,
	}
	items := make([]entity.ReceiptItem, len(lines))
	for i, line := range lines {
		items[i] = entity.ReceiptItem{
			ProductID:   line.productID,
			ProductName: line.name,
			Barcode:     line.barcode,
			Quantity:    line.quantity,
			UnitPrice:   line.unitPrice,
			SubTotal:    line.subTotal,
		}
	}
	receipt.Items = items

	// The receipt must be durable before any stock moves
	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, err
	}

	shortages, err := s.productRepo.SellStockBatch(ctx, quantities)
	if err != nil {
		// Unwind the receipt; no stock was touched
		if delErr := s.receiptRepo.Delete(ctx, receipt.ID); delErr != nil {
			return nil, fmt.Errorf("stock decrement failed and receipt cleanup failed: %w", delErr)
		}
		return nil, err
	}
	if len(shortages) > 0 {
		if delErr := s.receiptRepo.Delete(ctx, receipt.ID); delErr != nil {
			return nil, fmt.Errorf("insufficient stock and receipt cleanup failed: %w", delErr)
		}
		return nil, apperror.NewInsufficientStockError(shortages)
	}

	return receipt, nil
}

func (s *CheckoutService) placeOrder(ctx context.Context, actor Actor, input *CheckoutInput) (*entity.Order, error) {
	lines, _, total, err := s.buildLines(ctx, input)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	companyName := user.FullName()
	if user.CompanyName != nil && *user.CompanyName != "" {
		companyName = *user.CompanyName
	}

	totalProducts := 0
	items := make([]entity.OrderItem, len(lines))
	for i, line := range lines {
		totalProducts += line.quantity
		items[i] = entity.OrderItem{
			ProductID:   line.productID,
			ProductName: line.name,
			Barcode:     line.barcode,
			Quantity:    line.quantity,
			UnitPrice:   line.unitPrice,
			SubTotal:    line.subTotal,
		}
	}

	order := &entity.Order{
		OrderNo:       utils.GenerateOrderNo(),
		UserID:        user.ID,
		CompanyName:   companyName,
		CompanyEmail:  user.Email,
		Status:        enum.OrderStatusPending,
		TotalProducts: totalProducts,
		Total:         total,
		Items:         items,
	}

	// No stock mutation for company orders; fulfilment is offline
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

type checkoutLine struct {
	productID uuid.UUID
	name      string
	barcode   *string
	quantity  int
	unitPrice int64
	subTotal  int64
}

// buildLines validates the cart and snapshots product details into line
// items, pricing each line at the product's current selling price.
func (s *CheckoutService) buildLines(ctx context.Context, input *CheckoutInput) ([]checkoutLine, map[uuid.UUID]int, int64, error) {
	if len(input.Items) == 0 {
		return nil, nil, 0, apperror.NewBadRequestError("Cart is empty")
	}

	quantities := make(map[uuid.UUID]int, len(input.Items))
	productIDs := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, nil, 0, apperror.NewBadRequestError("Item quantity must be positive")
		}
		if _, seen := quantities[item.ProductID]; !seen {
			productIDs = append(productIDs, item.ProductID)
		}
		// Duplicate lines for the same product collapse into one decrement
		quantities[item.ProductID] += item.Quantity
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, nil, 0, err
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	var total int64
	lines := make([]checkoutLine, 0, len(productIDs))
	for _, id := range productIDs {
		product, exists := productMap[id]
		if !exists {
			return nil, nil, 0, apperror.NewNotFoundError(fmt.Sprintf("Product %s", id))
		}

		qty := quantities[id]
		subTotal := product.SellingPrice * int64(qty)
		total += subTotal

		lines = append(lines, checkoutLine{
			productID: product.ID,
			name:      product.Name,
			barcode:   product.Barcode,
			quantity:  qty,
			unitPrice: product.SellingPrice,
			subTotal:  subTotal,
		})
	}

	return lines, quantities, total, nil
}
