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

// RefundService handles receipt refunds
type RefundService struct {
	receiptRepo repository.ReceiptRepository
	refundRepo  repository.RefundRepository
	productRepo repository.ProductRepository
}

// NewRefundService creates a new refund service
func NewRefundService(
	receiptRepo repository.ReceiptRepository,
	refundRepo repository.RefundRepository,
	productRepo repository.ProductRepository,
) *RefundService {
	return &RefundService{
		receiptRepo: receiptRepo,
		refundRepo:  refundRepo,
		productRepo: productRepo,
	}
}

// RefundItemInput selects how many units of one receipt line to refund
type RefundItemInput struct {
	ReceiptItemID uuid.UUID
	Quantity      int
}

// RefundInput represents the refund request
type RefundInput struct {
	ReceiptID uuid.UUID
	Items     []RefundItemInput
}

// Refund refunds a subset of a receipt's line items. The refunded flag is
// claimed with a conditional write before any stock moves, so a receipt can
// be refunded at most once no matter how the attempts interleave. Refunded
// quantities return to the shop counter only.
func (s *RefundService) Refund(ctx context.Context, actor Actor, input *RefundInput) (*entity.RefundRecord, error) {
	if !authz.Allowed(actor.Role, authz.ActionRefund) {
		return nil, apperror.ErrForbidden
	}

	receipt, err := s.receiptRepo.GetWithItems(ctx, input.ReceiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	if receipt.Refunded {
		return nil, apperror.ErrAlreadyRefunded
	}

	itemMap := make(map[uuid.UUID]*entity.ReceiptItem, len(receipt.Items))
	for i := range receipt.Items {
		itemMap[receipt.Items[i].ID] = &receipt.Items[i]
	}

	var total int64
	increments := make(map[uuid.UUID]int)
	refundItems := make([]entity.RefundItem, 0, len(input.Items))

	for _, sel := range input.Items {
		line, exists := itemMap[sel.ReceiptItemID]
		if !exists {
			return nil, apperror.NewBadRequestError("Line item does not belong to this receipt")
		}
		if sel.Quantity < 0 || sel.Quantity > line.Quantity {
			return nil, apperror.NewBadRequestError("Refund quantity exceeds sold quantity")
		}
		if sel.Quantity == 0 {
			continue
		}

		amount := line.UnitPrice * int64(sel.Quantity)
		total += amount
		increments[line.ProductID] += sel.Quantity
		refundItems = append(refundItems, entity.RefundItem{
			ReceiptItemID: line.ID,
			ProductID:     line.ProductID,
			ProductName:   line.ProductName,
			Quantity:      sel.Quantity,
			Amount:        amount,
		})
	}

	if len(refundItems) == 0 {
		return nil, apperror.NewBadRequestError("No line item selected for refund")
	}

	// Claim the guard first; the losing side of a concurrent refund stops
	// here with zero stock change
	claimed, err := s.receiptRepo.MarkRefunded(ctx, receipt.ID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, apperror.ErrAlreadyRefunded
	}

	// Refunds always return stock to the front of house
	if err := s.productRepo.RestockShopBatch(ctx, increments); err != nil {
		return nil, err
	}

	record := &entity.RefundRecord{
		ReceiptID: receipt.ID,
		ActorID:   actor.ID,
		Total:     total,
		Items:     refundItems,
	}
	if err := s.refundRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// GetRefund returns a single refund record with its items
func (s *RefundService) GetRefund(ctx context.Context, actor Actor, id uuid.UUID) (*entity.RefundRecord, error) {
	if !authz.Allowed(actor.Role, authz.ActionRefund) {
		return nil, apperror.ErrForbidden
	}

	record, err := s.refundRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NewNotFoundError("Refund")
	}
	return record, nil
}

// ListRefunds returns refund records, newest first
func (s *RefundService) ListRefunds(ctx context.Context, actor Actor, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.RefundRecord], error) {
	if !authz.Allowed(actor.Role, authz.ActionRefund) {
		return nil, apperror.ErrForbidden
	}

	records, total, err := s.refundRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(records, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}
