package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/pkg/apperror"
	"github.com/dukahub/dukapos-api/pkg/pagination"
	"github.com/google/uuid"
)

func TestReceiptScoping(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, enum.RoleCashier)
	bob := env.createUser(t, enum.RoleCashier)
	manager := env.createUser(t, enum.RoleManager)

	product := env.createProduct(t, "Soap Bar", 20, 0, 0.60)
	sell := func(cashier Actor) uuid.UUID {
		result, err := env.checkout.Checkout(ctx, cashier, &CheckoutInput{
			Items: []CheckoutItemInput{{ProductID: product.ID, Quantity: 1}},
		})
		if err != nil {
			t.Fatalf("seed sale: %v", err)
		}
		return result.Receipt.ID
	}

	aliceReceipt := sell(env.actorFor(alice))
	bobReceipt := sell(env.actorFor(bob))

	params := func() *repository.ReceiptFilterParams {
		return &repository.ReceiptFilterParams{Pagination: &pagination.PaginationParams{Page: 1, PerPage: 20}}
	}

	// Cashiers only see their own sales
	result, err := env.receipt.ListReceipts(ctx, env.actorFor(alice), params())
	if err != nil {
		t.Fatalf("cashier list: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].ID != aliceReceipt {
		t.Errorf("cashier sees %d receipts, want only their own", len(result.Items))
	}

	if _, _, err := env.receipt.GetReceipt(ctx, env.actorFor(alice), bobReceipt); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("cross-cashier get err = %v, want ErrForbidden", err)
	}

	// Managers see all sales
	all, err := env.receipt.ListReceipts(ctx, env.actorFor(manager), params())
	if err != nil {
		t.Fatalf("manager list: %v", err)
	}
	if len(all.Items) != 2 {
		t.Errorf("manager sees %d receipts, want 2", len(all.Items))
	}

	// Company accounts have no sales history at all
	company := env.createUser(t, enum.RoleCompany)
	if _, err := env.receipt.ListReceipts(ctx, env.actorFor(company), params()); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("company list err = %v, want ErrForbidden", err)
	}
}

func TestGetReceiptIncludesRefundHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, receipt := sellSeven(t, env, "Chapati Pack")
	admin := Actor{ID: uuid.New(), Role: enum.RoleSuperadmin}

	if _, err := env.refund.Refund(ctx, admin, &RefundInput{
		ReceiptID: receipt.ID,
		Items:     []RefundItemInput{{ReceiptItemID: receipt.Items[0].ID, Quantity: 2}},
	}); err != nil {
		t.Fatalf("refund: %v", err)
	}

	got, refunds, err := env.receipt.GetReceipt(ctx, admin, receipt.ID)
	if err != nil {
		t.Fatalf("get receipt: %v", err)
	}
	if !got.Refunded {
		t.Error("refunded flag not set on reloaded receipt")
	}
	if len(refunds) != 1 {
		t.Fatalf("refund history length = %d, want 1", len(refunds))
	}
	if refunds[0].Total != 400 {
		t.Errorf("refund total = %d cents, want 400", refunds[0].Total)
	}
	if len(got.Items) != 1 {
		t.Errorf("receipt items = %d, want 1", len(got.Items))
	}
}

func TestListReceiptsCursorPagination(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	manager := env.createUser(t, enum.RoleManager)
	cashier := env.createUser(t, enum.RoleCashier)
	product := env.createProduct(t, "Pencil", 50, 0, 0.10)

	for i := 0; i < 5; i++ {
		if _, err := env.checkout.Checkout(ctx, env.actorFor(cashier), &CheckoutInput{
			Items: []CheckoutItemInput{{ProductID: product.ID, Quantity: 1}},
		}); err != nil {
			t.Fatalf("seed sale %d: %v", i, err)
		}
	}

	page, err := env.receipt.ListReceiptsCursor(ctx, env.actorFor(manager), &repository.ReceiptCursorFilterParams{
		Cursor: &pagination.CursorParams{Limit: 2},
	})
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("first page size = %d, want 2", len(page.Items))
	}
	if !page.Pagination.HasNext {
		t.Error("first page should report more results")
	}
	if page.Pagination.HasPrev {
		t.Error("first page should not report a previous page")
	}
	if page.Pagination.NextCursor == nil {
		t.Fatal("first page has no next cursor")
	}

	second, err := env.receipt.ListReceiptsCursor(ctx, env.actorFor(manager), &repository.ReceiptCursorFilterParams{
		Cursor: &pagination.CursorParams{Limit: 2, Cursor: *page.Pagination.NextCursor},
	})
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(second.Items) != 2 {
		t.Fatalf("second page size = %d, want 2", len(second.Items))
	}
	if second.Items[0].ID == page.Items[0].ID {
		t.Error("second page repeats the first page")
	}
	if !second.Pagination.HasPrev {
		t.Error("second page should report a previous page")
	}
}
