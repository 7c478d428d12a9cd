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

func TestCreateProductDerivesTotalAndReference(t *testing.T) {
	env := newTestEnv(t)

	product := env.createProduct(t, "Blue Band 500g", 12, 30, 2.40)
	if product.TotalQty != 42 {
		t.Errorf("total = %d, want 42", product.TotalQty)
	}
	if product.Slug != "blue-band-500g" {
		t.Errorf("slug = %q", product.Slug)
	}
	if product.SellingPrice != 240 {
		t.Errorf("selling price = %d cents, want 240", product.SellingPrice)
	}

	// A reference stock row is created alongside the product
	if got := env.referenceQty(t, product.ID); got != 42 {
		t.Errorf("reference stock = %d, want 42", got)
	}
}

func TestCreateProductRejectsDuplicateNameAndNegativeStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := Actor{ID: uuid.New(), Role: enum.RoleSuperadmin}

	env.createProduct(t, "Omo 1kg", 5, 0, 3.00)

	if _, err := env.product.CreateProduct(ctx, admin, &CreateProductInput{Name: "Omo 1kg", SellingPrice: 3.00}); err == nil {
		t.Error("duplicate name accepted")
	}
	if _, err := env.product.CreateProduct(ctx, admin, &CreateProductInput{Name: "Bad Stock", ShopQty: -1}); err == nil {
		t.Error("negative stock accepted")
	}
	if _, err := env.product.CreateProduct(ctx, Actor{ID: uuid.New(), Role: enum.RoleCashier}, &CreateProductInput{Name: "Nope"}); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("cashier create err = %v, want ErrForbidden", err)
	}
}

func TestStockTakeRealignsAllCounters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	storekeeper := env.createUser(t, enum.RoleStorekeeper)
	product := env.createProduct(t, "Soda Crate", 5, 3, 15.00)

	updated, err := env.product.StockTake(ctx, env.actorFor(storekeeper), product.ID, &StockTakeInput{ShopQty: 7, StoreQty: 10})
	if err != nil {
		t.Fatalf("stock take: %v", err)
	}
	if updated.ShopQty != 7 || updated.StoreQty != 10 || updated.TotalQty != 17 {
		t.Errorf("counters = shop %d / store %d / total %d, want 7 / 10 / 17",
			updated.ShopQty, updated.StoreQty, updated.TotalQty)
	}

	// The reference counter follows a stock take; the two ledgers agree again
	if got := env.referenceQty(t, product.ID); got != 17 {
		t.Errorf("reference stock = %d, want 17", got)
	}
}

func TestAddStockIncrementsCounters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	storekeeper := env.createUser(t, enum.RoleStorekeeper)
	product := env.createProduct(t, "Biscuits Box", 2, 4, 1.10)
	actor := env.actorFor(storekeeper)

	updated, err := env.product.AddStock(ctx, actor, product.ID, &AddStockInput{ShopQty: 3, StoreQty: 6})
	if err != nil {
		t.Fatalf("add stock: %v", err)
	}
	if updated.ShopQty != 5 || updated.StoreQty != 10 || updated.TotalQty != 15 {
		t.Errorf("counters = shop %d / store %d / total %d, want 5 / 10 / 15",
			updated.ShopQty, updated.StoreQty, updated.TotalQty)
	}
	if got := env.referenceQty(t, product.ID); got != 15 {
		t.Errorf("reference stock = %d, want 15", got)
	}

	if _, err := env.product.AddStock(ctx, actor, product.ID, &AddStockInput{}); err == nil {
		t.Error("empty stock addition accepted")
	}
}

func TestStockReconciliationReportsDrift(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	manager := env.createUser(t, enum.RoleManager)
	clean := env.createProduct(t, "Clean Product", 5, 5, 1.00)
	drifted := env.createProduct(t, "Drifted Product", 5, 5, 1.00)

	// Simulate a reference counter that stopped tracking the live total
	if err := env.db.Model(&entity.ReferenceStock{}).
		Where("product_id = ?", drifted.ID).
		Update("quantity", 7).Error; err != nil {
		t.Fatalf("corrupt reference row: %v", err)
	}

	mismatches, err := env.product.StockReconciliation(ctx, env.actorFor(manager))
	if err != nil {
		t.Fatalf("reconciliation: %v", err)
	}
	if len(mismatches) != 1 {
		t.Fatalf("mismatch count = %d, want 1", len(mismatches))
	}
	m := mismatches[0]
	if m.ProductID != drifted.ID || m.TotalQty != 10 || m.ReferenceQty != 7 {
		t.Errorf("mismatch = %+v, want drifted product with total 10 / reference 7", m)
	}
	_ = clean

	// Cashiers cannot run reconciliation
	cashier := env.createUser(t, enum.RoleCashier)
	if _, err := env.product.StockReconciliation(ctx, env.actorFor(cashier)); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("cashier reconciliation err = %v, want ErrForbidden", err)
	}
}

func TestUpdateProductLeavesStockAlone(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	manager := env.createUser(t, enum.RoleManager)
	product := env.createProduct(t, "Original Name", 5, 3, 2.00)

	name := "Renamed Product"
	price := 2.50
	updated, err := env.product.UpdateProduct(ctx, env.actorFor(manager), product.ID, &UpdateProductInput{
		Name:         &name,
		SellingPrice: &price,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Renamed Product" || updated.Slug != "renamed-product" {
		t.Errorf("name/slug = %q / %q", updated.Name, updated.Slug)
	}
	if updated.SellingPrice != 250 {
		t.Errorf("selling price = %d cents, want 250", updated.SellingPrice)
	}
	if updated.ShopQty != 5 || updated.StoreQty != 3 || updated.TotalQty != 8 {
		t.Errorf("stock changed by a catalog update: shop %d / store %d / total %d",
			updated.ShopQty, updated.StoreQty, updated.TotalQty)
	}
}

func TestCategoryLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	manager := env.createUser(t, enum.RoleManager)
	admin := Actor{ID: uuid.New(), Role: enum.RoleSuperadmin}
	actor := env.actorFor(manager)

	category, err := env.product.CreateCategory(ctx, actor, "Dairy")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if category.Slug != "dairy" {
		t.Errorf("slug = %q, want dairy", category.Slug)
	}

	if _, err := env.product.CreateCategory(ctx, actor, "Dairy"); err == nil {
		t.Error("duplicate category accepted")
	}

	// Products can attach to a category, and unknown categories are rejected
	if _, err := env.product.CreateProduct(ctx, admin, &CreateProductInput{
		Name:         "Fresh Milk 1L",
		CategoryID:   &category.ID,
		SellingPrice: 1.20,
	}); err != nil {
		t.Errorf("create categorized product: %v", err)
	}
	unknown := uuid.New()
	if _, err := env.product.CreateProduct(ctx, admin, &CreateProductInput{
		Name:       "Orphan Product",
		CategoryID: &unknown,
	}); err == nil {
		t.Error("unknown category accepted")
	}

	if err := env.product.DeleteCategory(ctx, actor, category.ID); err != nil {
		t.Errorf("delete category: %v", err)
	}
}
