package service

import (
	"context"
	"time"

	"github.com/dukahub/dukapos-api/internal/domain/authz"
	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/pkg/apperror"
	"github.com/dukahub/dukapos-api/pkg/pagination"
	"github.com/google/uuid"
)

// ReceiptService handles receipt queries
type ReceiptService struct {
	receiptRepo repository.ReceiptRepository
	refundRepo  repository.RefundRepository
}

// NewReceiptService creates a new receipt service
func NewReceiptService(receiptRepo repository.ReceiptRepository, refundRepo repository.RefundRepository) *ReceiptService {
	return &ReceiptService{
		receiptRepo: receiptRepo,
		refundRepo:  refundRepo,
	}
}

// scope narrows receipt queries for cashiers to their own sales. Roles with
// the view-reports grant see everything.
func (s *ReceiptService) scope(actor Actor) (*uuid.UUID, error) {
	if authz.Allowed(actor.Role, authz.ActionViewReports) {
		return nil, nil
	}
	if actor.Role == enum.RoleCashier {
		id := actor.ID
		return &id, nil
	}
	return nil, apperror.ErrForbidden
}

// GetReceipt returns one receipt with its items and any refund records
func (s *ReceiptService) GetReceipt(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Receipt, []entity.RefundRecord, error) {
	cashierID, err := s.scope(actor)
	if err != nil {
		return nil, nil, err
	}

	receipt, err := s.receiptRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if receipt == nil {
		return nil, nil, apperror.NewNotFoundError("Receipt")
	}
	if cashierID != nil && receipt.CashierID != *cashierID {
		return nil, nil, apperror.ErrForbidden
	}

	refunds, err := s.refundRepo.ListByReceipt(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return receipt, refunds, nil
}

// ListReceipts returns receipts using page-based pagination
func (s *ReceiptService) ListReceipts(ctx context.Context, actor Actor, params *repository.ReceiptFilterParams) (*pagination.PaginatedResult[entity.Receipt], error) {
	cashierID, err := s.scope(actor)
	if err != nil {
		return nil, err
	}
	if cashierID != nil {
		params.CashierID = cashierID
	}

	receipts, total, err := s.receiptRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	params.Pagination.Validate()
	return pagination.NewPaginatedResult(receipts,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}

// ListReceiptsCursor returns receipts using cursor-based pagination, suited
// to infinite-scroll sales history views.
func (s *ReceiptService) ListReceiptsCursor(ctx context.Context, actor Actor, params *repository.ReceiptCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Receipt], error) {
	cashierID, err := s.scope(actor)
	if err != nil {
		return nil, err
	}
	if cashierID != nil {
		params.CashierID = cashierID
	}

	receipts, err := s.receiptRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	cursorPagination, trimmed := pagination.NewCursorPagination(receipts, params.Cursor.Limit,
		func(r entity.Receipt) string { return r.ID.String() },
		func(r entity.Receipt) time.Time { return r.CreatedAt },
	)
	cursorPagination.HasPrev = params.Cursor.Cursor != ""

	return pagination.NewCursorPaginatedResult(trimmed, cursorPagination), nil
}
