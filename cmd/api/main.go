package main

import (
	"log"

	"github.com/dukahub/dukapos-api/internal/application/service"
	"github.com/dukahub/dukapos-api/internal/config"
	"github.com/dukahub/dukapos-api/internal/infrastructure/database"
	"github.com/dukahub/dukapos-api/internal/infrastructure/repository"
	"github.com/dukahub/dukapos-api/internal/presentation/http/handler"
	"github.com/dukahub/dukapos-api/internal/presentation/http/routes"
	"github.com/dukahub/dukapos-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	refStockRepo := repository.NewReferenceStockRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	refundRepo := repository.NewRefundRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	productService := service.NewProductService(productRepo, categoryRepo, refStockRepo)
	checkoutService := service.NewCheckoutService(productRepo, receiptRepo, orderRepo, userRepo)
	refundService := service.NewRefundService(receiptRepo, refundRepo, productRepo)
	receiptService := service.NewReceiptService(receiptRepo, refundRepo)
	orderService := service.NewOrderService(orderRepo)
	supplierService := service.NewSupplierService(supplierRepo)
	userService := service.NewUserService(userRepo)
	dashboardService := service.NewDashboardService(receiptRepo, orderRepo, productRepo, supplierRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Product:   handler.NewProductHandler(productService),
		Checkout:  handler.NewCheckoutHandler(checkoutService),
		Receipt:   handler.NewReceiptHandler(receiptService, refundService),
		Order:     handler.NewOrderHandler(orderService),
		Supplier:  handler.NewSupplierHandler(supplierService),
		User:      handler.NewUserHandler(userService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	deps := &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	}

	// Setup routes and start the server
	router := routes.Setup(handlers, deps)

	log.Printf("Starting %s on port %s", cfg.App.Name, cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
