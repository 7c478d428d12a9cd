package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dukahub/dukapos-api/internal/domain/enum"
	infraRepo "github.com/dukahub/dukapos-api/internal/infrastructure/repository"
	"github.com/dukahub/dukapos-api/pkg/apperror"
)

func newDashboardService(env *testEnv) *DashboardService {
	return NewDashboardService(
		infraRepo.NewReceiptRepository(env.db),
		infraRepo.NewOrderRepository(env.db),
		infraRepo.NewProductRepository(env.db),
		infraRepo.NewSupplierRepository(env.db),
	)
}

func TestDashboardStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	dashboard := newDashboardService(env)
	manager := env.createUser(t, enum.RoleManager)
	cashier := env.createUser(t, enum.RoleCashier)
	company := env.createUser(t, enum.RoleCompany)
	actor := env.actorFor(manager)

	product := env.createProduct(t, "Stats Product", 10, 10, 2.00)

	// One sale of 3 today and one pending company order
	if _, err := env.checkout.Checkout(ctx, env.actorFor(cashier), &CheckoutInput{
		Items: []CheckoutItemInput{{ProductID: product.ID, Quantity: 3}},
	}); err != nil {
		t.Fatalf("seed sale: %v", err)
	}
	if _, err := env.checkout.Checkout(ctx, env.actorFor(company), &CheckoutInput{
		Items: []CheckoutItemInput{{ProductID: product.ID, Quantity: 5}},
	}); err != nil {
		t.Fatalf("seed order: %v", err)
	}

	stats, err := dashboard.GetStats(ctx, actor)
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if stats.TodayReceipts != 1 {
		t.Errorf("today receipts = %d, want 1", stats.TodayReceipts)
	}
	if stats.TodaySales != 6.00 {
		t.Errorf("today sales = %.2f, want 6.00", stats.TodaySales)
	}
	if stats.PendingOrders != 1 {
		t.Errorf("pending orders = %d, want 1", stats.PendingOrders)
	}
	if stats.ProcessingOrders != 0 {
		t.Errorf("processing orders = %d, want 0", stats.ProcessingOrders)
	}

	// Cashiers do not see the dashboard
	if _, err := dashboard.GetStats(ctx, env.actorFor(cashier)); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("cashier stats err = %v, want ErrForbidden", err)
	}
}

func TestSalesReport(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	dashboard := newDashboardService(env)
	manager := env.createUser(t, enum.RoleManager)
	cashier := env.createUser(t, enum.RoleCashier)
	actor := env.actorFor(manager)

	product := env.createProduct(t, "Report Product", 20, 0, 1.50)
	for i := 0; i < 2; i++ {
		if _, err := env.checkout.Checkout(ctx, env.actorFor(cashier), &CheckoutInput{
			Items: []CheckoutItemInput{{ProductID: product.ID, Quantity: 2}},
		}); err != nil {
			t.Fatalf("seed sale %d: %v", i, err)
		}
	}

	from := time.Now().AddDate(0, 0, -1)
	to := time.Now().AddDate(0, 0, 1)
	report, err := dashboard.GetSalesReport(ctx, actor, from, to)
	if err != nil {
		t.Fatalf("sales report: %v", err)
	}
	if report.Receipts != 2 {
		t.Errorf("report receipts = %d, want 2", report.Receipts)
	}
	if report.Total != 6.00 {
		t.Errorf("report total = %.2f, want 6.00", report.Total)
	}
	if len(report.Daily) != 1 {
		t.Fatalf("daily rows = %d, want 1", len(report.Daily))
	}
	if report.Daily[0].Receipts != 2 || report.Daily[0].Total != 600 {
		t.Errorf("daily row = %+v, want 2 receipts / 600 cents", report.Daily[0])
	}

	// An empty range is rejected
	if _, err := dashboard.GetSalesReport(ctx, actor, to, from); err == nil {
		t.Error("inverted range accepted")
	}

	// Receipts outside the range are excluded
	past, err := dashboard.GetSalesReport(ctx, actor, from.AddDate(0, -1, 0), from)
	if err != nil {
		t.Fatalf("past report: %v", err)
	}
	if past.Receipts != 0 {
		t.Errorf("past report receipts = %d, want 0", past.Receipts)
	}
}
