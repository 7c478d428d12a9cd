package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/dukahub/dukapos-api/internal/domain/repository"
	infraRepo "github.com/dukahub/dukapos-api/internal/infrastructure/repository"
	"github.com/dukahub/dukapos-api/pkg/apperror"
	"github.com/dukahub/dukapos-api/pkg/pagination"
	"github.com/google/uuid"
)

func TestUserAdministrationRestrictedToSuperadmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	users := NewUserService(infraRepo.NewUserRepository(env.db))

	target := env.createUser(t, enum.RoleCashier)
	params := &repository.UserFilterParams{Pagination: &pagination.PaginationParams{Page: 1, PerPage: 20}}

	// Even managers cannot administer accounts
	for _, role := range []enum.Role{enum.RoleCashier, enum.RoleStorekeeper, enum.RoleManager, enum.RoleCompany} {
		actor := Actor{ID: uuid.New(), Role: role}
		if _, err := users.ListUsers(ctx, actor, params); !errors.Is(err, apperror.ErrForbidden) {
			t.Errorf("%s list err = %v, want ErrForbidden", role, err)
		}
		if _, err := users.UpdateRole(ctx, actor, target.ID, enum.RoleManager); !errors.Is(err, apperror.ErrForbidden) {
			t.Errorf("%s update role err = %v, want ErrForbidden", role, err)
		}
	}

	admin := Actor{ID: uuid.New(), Role: enum.RoleSuperadmin}
	promoted, err := users.UpdateRole(ctx, admin, target.ID, enum.RoleManager)
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if promoted.Role != enum.RoleManager {
		t.Errorf("role after promotion = %v, want manager", promoted.Role)
	}
}

func TestUserRoleUpdateGuards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	users := NewUserService(infraRepo.NewUserRepository(env.db))

	adminUser := env.createUser(t, enum.RoleSuperadmin)
	admin := env.actorFor(adminUser)
	target := env.createUser(t, enum.RoleCashier)

	if _, err := users.UpdateRole(ctx, admin, target.ID, enum.Role("bogus")); err == nil {
		t.Error("unknown role accepted")
	}
	if _, err := users.UpdateRole(ctx, admin, admin.ID, enum.RoleCashier); err == nil {
		t.Error("self role change accepted")
	}
	if _, err := users.UpdateRole(ctx, admin, uuid.New(), enum.RoleManager); err == nil {
		t.Error("role change for unknown user accepted")
	}

	if err := users.DeleteUser(ctx, admin, admin.ID); err == nil {
		t.Error("self deletion accepted")
	}
	if err := users.DeleteUser(ctx, admin, target.ID); err != nil {
		t.Errorf("delete user: %v", err)
	}
	if _, err := users.GetUser(ctx, admin, target.ID); err == nil {
		t.Error("deleted user still found")
	}
}
