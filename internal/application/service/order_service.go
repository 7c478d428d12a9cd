package service

import (
	"context"

	"github.com/dukahub/dukapos-api/internal/domain/authz"
	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/pkg/apperror"
	"github.com/dukahub/dukapos-api/pkg/pagination"
	"github.com/google/uuid"
)

// OrderService handles company order queries and status transitions
type OrderService struct {
	orderRepo repository.OrderRepository
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo repository.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// ListOrders returns orders visible to the actor. Company accounts only ever
// see orders placed under their own email; staff roles need the
// manage-orders grant.
func (s *OrderService) ListOrders(ctx context.Context, actor Actor, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	if actor.Role == enum.RoleCompany {
		params.CompanyEmail = actor.Email
	} else if !authz.Allowed(actor.Role, authz.ActionManageOrders) {
		return nil, apperror.ErrForbidden
	}

	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	params.Pagination.Validate()
	return pagination.NewPaginatedResult(orders,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}

// GetOrder returns one order with its items
func (s *OrderService) GetOrder(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	if actor.Role == enum.RoleCompany {
		if order.CompanyEmail != actor.Email {
			return nil, apperror.ErrForbidden
		}
	} else if !authz.Allowed(actor.Role, authz.ActionManageOrders) {
		return nil, apperror.ErrForbidden
	}

	return order, nil
}

// AdvanceStatus moves an order one step along pending -> processing ->
// delivered. Advancing a terminal order is a no-op that returns the order
// unchanged. The transition is a compare-and-set, so two concurrent advances
// move the order a single step, not two.
func (s *OrderService) AdvanceStatus(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Order, error) {
	if !authz.Allowed(actor.Role, authz.ActionManageOrders) {
		return nil, apperror.ErrForbidden
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	next, ok := order.Status.Next()
	if !ok {
		return order, nil
	}

	moved, err := s.orderRepo.UpdateStatusCAS(ctx, id, order.Status, next)
	if err != nil {
		return nil, err
	}
	if !moved {
		// Lost a race with a concurrent transition; report the fresh state
		return nil, apperror.NewConflictError("Order status changed concurrently")
	}

	order.Status = next
	return order, nil
}

// RevokeOrder cancels an order that has not yet been delivered. Delivered
// and already-revoked orders are rejected.
func (s *OrderService) RevokeOrder(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Order, error) {
	if !authz.Allowed(actor.Role, authz.ActionManageOrders) {
		return nil, apperror.ErrForbidden
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	if !order.Status.CanRevoke() {
		return nil, apperror.NewConflictError("Order can no longer be revoked")
	}

	moved, err := s.orderRepo.UpdateStatusCAS(ctx, id, order.Status, enum.OrderStatusRevoked)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, apperror.NewConflictError("Order status changed concurrently")
	}

	order.Status = enum.OrderStatusRevoked
	return order, nil
}
