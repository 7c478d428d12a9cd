package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/dukahub/dukapos-api/pkg/apperror"
	"github.com/google/uuid"
)

func TestSupplierLedgerBalance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	manager := env.createUser(t, enum.RoleManager)
	actor := env.actorFor(manager)

	supplier, err := env.supplier.CreateSupplier(ctx, actor, &CreateSupplierInput{Name: "Kamau Wholesalers"})
	if err != nil {
		t.Fatalf("create supplier: %v", err)
	}

	// Two deliveries: 10 x 3.50 and 4 x 12.00
	if _, err := env.supplier.AddDelivery(ctx, actor, supplier.ID, &AddDeliveryInput{
		ProductName: "Maize Flour 2kg", UnitPrice: 3.50, UnitType: "bale", Quantity: 10,
	}); err != nil {
		t.Fatalf("add delivery: %v", err)
	}
	if _, err := env.supplier.AddDelivery(ctx, actor, supplier.ID, &AddDeliveryInput{
		ProductName: "Rice 5kg", UnitPrice: 12.00, UnitType: "sack", Quantity: 4,
	}); err != nil {
		t.Fatalf("add delivery: %v", err)
	}

	// One payment of 50.00
	if _, err := env.supplier.AddPayment(ctx, actor, supplier.ID, &AddPaymentInput{
		Amount: 50.00, Method: "mpesa",
	}); err != nil {
		t.Fatalf("add payment: %v", err)
	}

	ledger, err := env.supplier.GetLedger(ctx, actor, supplier.ID)
	if err != nil {
		t.Fatalf("get ledger: %v", err)
	}

	// Balance is derived from the entries: (35 + 48) - 50 = 33
	if ledger.TotalDeliveries != 83.00 {
		t.Errorf("total deliveries = %.2f, want 83.00", ledger.TotalDeliveries)
	}
	if ledger.TotalPayments != 50.00 {
		t.Errorf("total payments = %.2f, want 50.00", ledger.TotalPayments)
	}
	if ledger.Balance != 33.00 {
		t.Errorf("balance = %.2f, want 33.00", ledger.Balance)
	}

	if len(ledger.Supplier.Deliveries) != 2 {
		t.Errorf("delivery entries = %d, want 2", len(ledger.Supplier.Deliveries))
	}
	if len(ledger.Supplier.Payments) != 1 {
		t.Errorf("payment entries = %d, want 1", len(ledger.Supplier.Payments))
	}
}

func TestSupplierDeliveryTotalFixedAtWriteTime(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	manager := env.createUser(t, enum.RoleManager)
	actor := env.actorFor(manager)

	supplier, err := env.supplier.CreateSupplier(ctx, actor, &CreateSupplierInput{Name: "Wanjiku Traders"})
	if err != nil {
		t.Fatalf("create supplier: %v", err)
	}

	delivery, err := env.supplier.AddDelivery(ctx, actor, supplier.ID, &AddDeliveryInput{
		ProductName: "Sugar 1kg", UnitPrice: 1.25, UnitType: "carton", Quantity: 24,
	})
	if err != nil {
		t.Fatalf("add delivery: %v", err)
	}
	if delivery.TotalPrice != 3000 {
		t.Errorf("delivery total = %d cents, want 3000", delivery.TotalPrice)
	}
}

func TestSupplierLedgerValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	manager := env.createUser(t, enum.RoleManager)
	actor := env.actorFor(manager)

	supplier, err := env.supplier.CreateSupplier(ctx, actor, &CreateSupplierInput{Name: "Otieno Supplies"})
	if err != nil {
		t.Fatalf("create supplier: %v", err)
	}

	if _, err := env.supplier.AddDelivery(ctx, actor, supplier.ID, &AddDeliveryInput{
		ProductName: "Bread", UnitPrice: 0.80, Quantity: 0,
	}); err == nil {
		t.Error("zero quantity delivery accepted")
	}
	if _, err := env.supplier.AddPayment(ctx, actor, supplier.ID, &AddPaymentInput{Amount: 0}); err == nil {
		t.Error("zero payment accepted")
	}
	if _, err := env.supplier.AddPayment(ctx, actor, supplier.ID, &AddPaymentInput{Amount: -5}); err == nil {
		t.Error("negative payment accepted")
	}
	if _, err := env.supplier.AddPayment(ctx, actor, uuid.New(), &AddPaymentInput{Amount: 10}); err == nil {
		t.Error("payment against unknown supplier accepted")
	}
	if _, err := env.supplier.CreateSupplier(ctx, actor, &CreateSupplierInput{}); err == nil {
		t.Error("nameless supplier accepted")
	}
}

func TestSupplierAccessRequiresGrant(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cashier := env.createUser(t, enum.RoleCashier)
	storekeeper := env.createUser(t, enum.RoleStorekeeper)

	if _, err := env.supplier.CreateSupplier(ctx, env.actorFor(cashier), &CreateSupplierInput{Name: "X"}); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("cashier create err = %v, want ErrForbidden", err)
	}

	// Storekeepers manage suppliers
	if _, err := env.supplier.CreateSupplier(ctx, env.actorFor(storekeeper), &CreateSupplierInput{Name: "Njeri Distributors"}); err != nil {
		t.Errorf("storekeeper create: %v", err)
	}
}
