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

// UserService handles account administration
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers returns accounts matching the filter
func (s *UserService) ListUsers(ctx context.Context, actor Actor, params *repository.UserFilterParams) (*pagination.PaginatedResult[entity.User], error) {
	if !authz.Allowed(actor.Role, authz.ActionManageUsers) {
		return nil, apperror.ErrForbidden
	}

	users, total, err := s.userRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	params.Pagination.Validate()
	return pagination.NewPaginatedResult(users,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}

// GetUser returns one account
func (s *UserService) GetUser(ctx context.Context, actor Actor, id uuid.UUID) (*entity.User, error) {
	if !authz.Allowed(actor.Role, authz.ActionManageUsers) {
		return nil, apperror.ErrForbidden
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// UpdateRole assigns a new role to an account
func (s *UserService) UpdateRole(ctx context.Context, actor Actor, id uuid.UUID, role enum.Role) (*entity.User, error) {
	if !authz.Allowed(actor.Role, authz.ActionManageUsers) {
		return nil, apperror.ErrForbidden
	}
	if !role.Valid() {
		return nil, apperror.NewBadRequestError("Unknown role")
	}
	if actor.ID == id {
		return nil, apperror.NewBadRequestError("Cannot change your own role")
	}

	if err := s.userRepo.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, id)
}

// DeleteUser removes an account
func (s *UserService) DeleteUser(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !authz.Allowed(actor.Role, authz.ActionManageUsers) {
		return apperror.ErrForbidden
	}
	if actor.ID == id {
		return apperror.NewBadRequestError("Cannot delete your own account")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}

	return s.userRepo.Delete(ctx, id)
}
