package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/enum"
	infraRepo "github.com/dukahub/dukapos-api/internal/infrastructure/repository"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database per test. The named
// shared-cache DSN keeps every connection from the pool on the same
// database; a plain :memory: DSN would hand each connection its own.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Category{},
		&entity.Product{},
		&entity.ReferenceStock{},
		&entity.Receipt{},
		&entity.ReceiptItem{},
		&entity.RefundRecord{},
		&entity.RefundItem{},
		&entity.Order{},
		&entity.OrderItem{},
		&entity.Supplier{},
		&entity.SupplierDelivery{},
		&entity.SupplierPayment{},
		&entity.IdempotencyKey{},
	); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return db
}

// testEnv bundles the repositories and services most tests need
type testEnv struct {
	db       *gorm.DB
	checkout *CheckoutService
	refund   *RefundService
	order    *OrderService
	product  *ProductService
	supplier *SupplierService
	receipt  *ReceiptService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	productRepo := infraRepo.NewProductRepository(db)
	categoryRepo := infraRepo.NewCategoryRepository(db)
	refStockRepo := infraRepo.NewReferenceStockRepository(db)
	receiptRepo := infraRepo.NewReceiptRepository(db)
	refundRepo := infraRepo.NewRefundRepository(db)
	orderRepo := infraRepo.NewOrderRepository(db)
	supplierRepo := infraRepo.NewSupplierRepository(db)
	userRepo := infraRepo.NewUserRepository(db)

	return &testEnv{
		db:       db,
		checkout: NewCheckoutService(productRepo, receiptRepo, orderRepo, userRepo),
		refund:   NewRefundService(receiptRepo, refundRepo, productRepo),
		order:    NewOrderService(orderRepo),
		product:  NewProductService(productRepo, categoryRepo, refStockRepo),
		supplier: NewSupplierService(supplierRepo),
		receipt:  NewReceiptService(receiptRepo, refundRepo),
	}
}

func (e *testEnv) createUser(t *testing.T, role enum.Role) *entity.User {
	t.Helper()

	user := &entity.User{
		FirstName: "Test",
		LastName:  string(role),
		Email:     fmt.Sprintf("%s-%s@example.com", role, uuid.New().String()[:8]),
		Password:  "not-a-real-hash",
		Role:      role,
	}
	if role == enum.RoleCompany {
		name := "Acme Ltd"
		user.CompanyName = &name
	}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("create %s user: %v", role, err)
	}
	return user
}

func (e *testEnv) actorFor(user *entity.User) Actor {
	return Actor{ID: user.ID, Email: user.Email, Role: user.Role}
}

// createProduct seeds a product through the service so the reference stock
// row is created alongside it
func (e *testEnv) createProduct(t *testing.T, name string, shopQty, storeQty int, sellingPrice float64) *entity.Product {
	t.Helper()

	admin := Actor{ID: uuid.New(), Role: enum.RoleSuperadmin}
	product, err := e.product.CreateProduct(context.Background(), admin, &CreateProductInput{
		Name:         name,
		ShopQty:      shopQty,
		StoreQty:     storeQty,
		SellingPrice: sellingPrice,
	})
	if err != nil {
		t.Fatalf("create product %q: %v", name, err)
	}
	return product
}

func (e *testEnv) reloadProduct(t *testing.T, id uuid.UUID) *entity.Product {
	t.Helper()

	var product entity.Product
	if err := e.db.First(&product, "id = ?", id).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	return &product
}

func (e *testEnv) referenceQty(t *testing.T, productID uuid.UUID) int {
	t.Helper()

	var ref entity.ReferenceStock
	if err := e.db.First(&ref, "product_id = ?", productID).Error; err != nil {
		t.Fatalf("reload reference stock: %v", err)
	}
	return ref.Quantity
}
