package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/dukahub/dukapos-api/pkg/apperror"
	"github.com/google/uuid"
)

// sellSeven runs a checkout of 7 units against a 5/3 product and returns the
// product and the receipt with its persisted line items
func sellSeven(t *testing.T, env *testEnv, name string) (*entity.Product, *entity.Receipt) {
	t.Helper()
	ctx := context.Background()

	cashier := env.createUser(t, enum.RoleCashier)
	product := env.createProduct(t, name, 5, 3, 2.00)

	result, err := env.checkout.Checkout(ctx, env.actorFor(cashier), &CheckoutInput{
		Items: []CheckoutItemInput{{ProductID: product.ID, Quantity: 7}},
	})
	if err != nil {
		t.Fatalf("seed checkout: %v", err)
	}
	return product, result.Receipt
}

func TestRefundRestoresShopOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product, receipt := sellSeven(t, env, "Milk 500ml")
	admin := Actor{ID: uuid.New(), Role: enum.RoleSuperadmin}

	record, err := env.refund.Refund(ctx, admin, &RefundInput{
		ReceiptID: receipt.ID,
		Items:     []RefundItemInput{{ReceiptItemID: receipt.Items[0].ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("refund: %v", err)
	}

	// Stock after the sale was shop 0 / store 1; the two refunded units go
	// back to the shop, never the store
	after := env.reloadProduct(t, product.ID)
	if after.ShopQty != 2 || after.StoreQty != 1 || after.TotalQty != 3 {
		t.Errorf("stock after refund = shop %d / store %d / total %d, want 2 / 1 / 3",
			after.ShopQty, after.StoreQty, after.TotalQty)
	}
	if got := env.referenceQty(t, product.ID); got != 3 {
		t.Errorf("reference stock after refund = %d, want 3", got)
	}

	if record.Total != 400 {
		t.Errorf("refund total = %d cents, want 400", record.Total)
	}
	if len(record.Items) != 1 || record.Items[0].Quantity != 2 {
		t.Errorf("refund items = %+v, want one line of quantity 2", record.Items)
	}
}

func TestRefundSecondAttemptRejectedWithoutStockChange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product, receipt := sellSeven(t, env, "Yoghurt 250ml")
	admin := Actor{ID: uuid.New(), Role: enum.RoleSuperadmin}

	input := &RefundInput{
		ReceiptID: receipt.ID,
		Items:     []RefundItemInput{{ReceiptItemID: receipt.Items[0].ID, Quantity: 1}},
	}
	if _, err := env.refund.Refund(ctx, admin, input); err != nil {
		t.Fatalf("first refund: %v", err)
	}

	_, err := env.refund.Refund(ctx, admin, input)
	if !errors.Is(err, apperror.ErrAlreadyRefunded) {
		t.Fatalf("second refund err = %v, want ErrAlreadyRefunded", err)
	}

	// Exactly one unit restored in total
	after := env.reloadProduct(t, product.ID)
	if after.ShopQty != 1 || after.TotalQty != 2 {
		t.Errorf("stock after double refund = shop %d / total %d, want 1 / 2", after.ShopQty, after.TotalQty)
	}

	var recordCount int64
	if err := env.db.Model(&entity.RefundRecord{}).Count(&recordCount).Error; err != nil {
		t.Fatalf("count refund records: %v", err)
	}
	if recordCount != 1 {
		t.Errorf("refund record count = %d, want 1", recordCount)
	}
}

func TestRefundValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, receipt := sellSeven(t, env, "Eggs Tray")
	admin := Actor{ID: uuid.New(), Role: enum.RoleSuperadmin}

	tests := []struct {
		name  string
		input *RefundInput
	}{
		{"unknown receipt", &RefundInput{
			ReceiptID: uuid.New(),
			Items:     []RefundItemInput{{ReceiptItemID: receipt.Items[0].ID, Quantity: 1}},
		}},
		{"line from another receipt", &RefundInput{
			ReceiptID: receipt.ID,
			Items:     []RefundItemInput{{ReceiptItemID: uuid.New(), Quantity: 1}},
		}},
		{"quantity above sold", &RefundInput{
			ReceiptID: receipt.ID,
			Items:     []RefundItemInput{{ReceiptItemID: receipt.Items[0].ID, Quantity: 8}},
		}},
		{"nothing selected", &RefundInput{
			ReceiptID: receipt.ID,
			Items:     []RefundItemInput{{ReceiptItemID: receipt.Items[0].ID, Quantity: 0}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.refund.Refund(ctx, admin, tt.input); err == nil {
				t.Error("expected an error")
			}
		})
	}

	// None of the rejected attempts may consume the refund guard
	var fresh entity.Receipt
	if err := env.db.First(&fresh, "id = ?", receipt.ID).Error; err != nil {
		t.Fatalf("reload receipt: %v", err)
	}
	if fresh.Refunded {
		t.Error("refunded flag set by a rejected attempt")
	}
}

func TestRefundDeniedForNonSuperadmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, receipt := sellSeven(t, env, "Butter 250g")
	input := &RefundInput{
		ReceiptID: receipt.ID,
		Items:     []RefundItemInput{{ReceiptItemID: receipt.Items[0].ID, Quantity: 1}},
	}

	for _, role := range []enum.Role{enum.RoleCashier, enum.RoleStorekeeper, enum.RoleManager, enum.RoleCompany} {
		actor := Actor{ID: uuid.New(), Role: role}
		if _, err := env.refund.Refund(ctx, actor, input); !errors.Is(err, apperror.ErrForbidden) {
			t.Errorf("role %s: err = %v, want ErrForbidden", role, err)
		}
	}
}

func TestRefundPartialThenSaleFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Full life cycle: sell 7 of 5/3, refund 2, sell the restored units again
	product, receipt := sellSeven(t, env, "Juice 1L")
	admin := Actor{ID: uuid.New(), Role: enum.RoleSuperadmin}

	if _, err := env.refund.Refund(ctx, admin, &RefundInput{
		ReceiptID: receipt.ID,
		Items:     []RefundItemInput{{ReceiptItemID: receipt.Items[0].ID, Quantity: 2}},
	}); err != nil {
		t.Fatalf("refund: %v", err)
	}

	cashier := env.createUser(t, enum.RoleCashier)
	if _, err := env.checkout.Checkout(ctx, env.actorFor(cashier), &CheckoutInput{
		Items: []CheckoutItemInput{{ProductID: product.ID, Quantity: 3}},
	}); err != nil {
		t.Fatalf("second sale: %v", err)
	}

	after := env.reloadProduct(t, product.ID)
	if after.ShopQty != 0 || after.StoreQty != 0 || after.TotalQty != 0 {
		t.Errorf("final stock = shop %d / store %d / total %d, want all zero",
			after.ShopQty, after.StoreQty, after.TotalQty)
	}
	if got := env.referenceQty(t, product.ID); got != 0 {
		t.Errorf("final reference stock = %d, want 0", got)
	}
}
