package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dukahub/dukapos-api/internal/domain/enum"
	infraRepo "github.com/dukahub/dukapos-api/internal/infrastructure/repository"
	"github.com/dukahub/dukapos-api/pkg/apperror"
	"github.com/dukahub/dukapos-api/pkg/utils"
)

func newAuthService(env *testEnv) *AuthService {
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(infraRepo.NewUserRepository(env.db), jwtManager)
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	auth := newAuthService(env)

	resp, err := auth.Register(ctx, &RegisterInput{
		FirstName: "Grace",
		LastName:  "Mwangi",
		Email:     "grace@example.com",
		Password:  "correct horse battery",
		Role:      enum.RoleCashier,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("expected both tokens on registration")
	}
	if resp.User.Password == "correct horse battery" {
		t.Error("password stored in plain text")
	}

	login, err := auth.Login(ctx, &LoginInput{Email: "grace@example.com", Password: "correct horse battery"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.User.ID != resp.User.ID {
		t.Error("login returned a different user")
	}

	if _, err := auth.Login(ctx, &LoginInput{Email: "grace@example.com", Password: "wrong"}); !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Errorf("bad password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := auth.Login(ctx, &LoginInput{Email: "nobody@example.com", Password: "x"}); !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterRoleRestrictions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	auth := newAuthService(env)

	// Staff roles cannot be self-assigned
	for _, role := range []enum.Role{enum.RoleManager, enum.RoleStorekeeper, enum.RoleSuperadmin} {
		if _, err := auth.Register(ctx, &RegisterInput{
			FirstName: "Eve", Email: string(role) + "@example.com", Password: "pw", Role: role,
		}); err == nil {
			t.Errorf("self-registration as %s accepted", role)
		}
	}

	// Company accounts need a company name
	if _, err := auth.Register(ctx, &RegisterInput{
		FirstName: "Co", Email: "co@example.com", Password: "pw", Role: enum.RoleCompany,
	}); err == nil {
		t.Error("company registration without a name accepted")
	}

	name := "Acme Ltd"
	if _, err := auth.Register(ctx, &RegisterInput{
		FirstName: "Co", Email: "co@example.com", Password: "pw",
		Role: enum.RoleCompany, CompanyName: &name,
	}); err != nil {
		t.Errorf("company registration: %v", err)
	}

	// Duplicate email
	if _, err := auth.Register(ctx, &RegisterInput{
		FirstName: "Co2", Email: "co@example.com", Password: "pw",
		Role: enum.RoleCompany, CompanyName: &name,
	}); err == nil {
		t.Error("duplicate email accepted")
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	auth := newAuthService(env)

	resp, err := auth.Register(ctx, &RegisterInput{
		FirstName: "Joy", Email: "joy@example.com", Password: "pw",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	refreshed, err := auth.RefreshToken(ctx, resp.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.User.ID != resp.User.ID {
		t.Error("refresh returned a different user")
	}

	if _, err := auth.RefreshToken(ctx, "not-a-token"); !errors.Is(err, apperror.ErrInvalidToken) {
		t.Errorf("garbage token err = %v, want ErrInvalidToken", err)
	}

	// An access token is not a refresh token
	if _, err := auth.RefreshToken(ctx, resp.AccessToken); !errors.Is(err, apperror.ErrInvalidToken) {
		t.Errorf("access-as-refresh err = %v, want ErrInvalidToken", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	auth := newAuthService(env)

	resp, err := auth.Register(ctx, &RegisterInput{
		FirstName: "Old", LastName: "Name", Email: "profile@example.com", Password: "pw",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	first := "New"
	updated, err := auth.UpdateProfile(ctx, resp.User.ID, &UpdateProfileInput{FirstName: &first})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.FirstName != "New" || updated.LastName != "Name" {
		t.Errorf("name = %s %s, want New Name", updated.FirstName, updated.LastName)
	}

	// Company name is ignored for non-company accounts
	company := "Sneaky Ltd"
	updated, err = auth.UpdateProfile(ctx, resp.User.ID, &UpdateProfileInput{CompanyName: &company})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.CompanyName != nil {
		t.Error("company name set on a cashier account")
	}
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	auth := newAuthService(env)

	resp, err := auth.Register(ctx, &RegisterInput{
		FirstName: "Sam", Email: "sam@example.com", Password: "old-password",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := auth.ChangePassword(ctx, resp.User.ID, "wrong", "new-password"); err == nil {
		t.Error("password changed with a wrong current password")
	}
	if err := auth.ChangePassword(ctx, resp.User.ID, "old-password", "new-password"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, err := auth.Login(ctx, &LoginInput{Email: "sam@example.com", Password: "new-password"}); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if _, err := auth.Login(ctx, &LoginInput{Email: "sam@example.com", Password: "old-password"}); err == nil {
		t.Error("old password still accepted")
	}
}
