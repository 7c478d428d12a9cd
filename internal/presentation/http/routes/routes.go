package routes

import (
	"time"

	"github.com/dukahub/dukapos-api/internal/config"
	"github.com/dukahub/dukapos-api/internal/domain/authz"
	domainRepo "github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/internal/presentation/http/handler"
	"github.com/dukahub/dukapos-api/internal/presentation/http/middleware"
	"github.com/dukahub/dukapos-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Checkout  *handler.CheckoutHandler
	Receipt   *handler.ReceiptHandler
	Order     *handler.OrderHandler
	Supplier  *handler.SupplierHandler
	User      *handler.UserHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}

	// Profile
	protected.GET("/profile", h.Auth.Profile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Checkout: a retried request with the same Idempotency-Key replays the
	// original response instead of selling the cart twice
	protected.POST("/checkout", middleware.IdempotencyRequired(idempotency), h.Checkout.Checkout)

	// Products
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/barcode/:barcode", h.Product.GetByBarcode)
		products.GET("/:id", h.Product.Get)
		products.POST("", middleware.RequireAction(authz.ActionManageProducts), h.Product.Create)
		products.PUT("/:id", middleware.RequireAction(authz.ActionManageProducts), h.Product.Update)
		products.DELETE("/:id", middleware.RequireAction(authz.ActionManageProducts), h.Product.Delete)
		products.PUT("/:id/stock", middleware.RequireAction(authz.ActionAdjustStock), h.Product.StockTake)
		products.POST("/:id/stock", middleware.RequireAction(authz.ActionAdjustStock), h.Product.AddStock)
	}
	protected.GET("/stock/reconciliation", middleware.RequireAction(authz.ActionAdjustStock), h.Product.Reconciliation)

	// Categories
	categories := protected.Group("/categories")
	{
		categories.GET("", h.Product.ListCategories)
		categories.POST("", middleware.RequireAction(authz.ActionManageProducts), h.Product.CreateCategory)
		categories.DELETE("/:id", middleware.RequireAction(authz.ActionManageProducts), h.Product.DeleteCategory)
	}

	// Receipts and refunds
	receipts := protected.Group("/receipts")
	{
		receipts.GET("", h.Receipt.List)
		receipts.GET("/:id", h.Receipt.Get)
		receipts.POST("/:id/refund", middleware.RequireAction(authz.ActionRefund),
			middleware.Idempotency(idempotency), h.Receipt.Refund)
	}
	refunds := protected.Group("/refunds")
	{
		refunds.GET("", middleware.RequireAction(authz.ActionRefund), h.Receipt.ListRefunds)
		refunds.GET("/:id", middleware.RequireAction(authz.ActionRefund), h.Receipt.GetRefund)
	}

	// Company orders. Listing is open to company accounts (scoped to their
	// own orders in the service); transitions need manage-orders.
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.PATCH("/:id/advance", middleware.RequireAction(authz.ActionManageOrders), h.Order.Advance)
		orders.PATCH("/:id/revoke", middleware.RequireAction(authz.ActionManageOrders), h.Order.Revoke)
	}

	// Suppliers
	suppliers := protected.Group("/suppliers")
	suppliers.Use(middleware.RequireAction(authz.ActionManageSuppliers))
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.POST("", h.Supplier.Create)
		suppliers.PUT("/:id", h.Supplier.Update)
		suppliers.POST("/:id/deliveries", h.Supplier.AddDelivery)
		suppliers.POST("/:id/payments", h.Supplier.AddPayment)
	}

	// Users
	users := protected.Group("/users")
	users.Use(middleware.RequireAction(authz.ActionManageUsers))
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PATCH("/:id/role", h.User.UpdateRole)
		users.DELETE("/:id", h.User.Delete)
	}

	// Dashboard and reports
	protected.GET("/dashboard", middleware.RequireAction(authz.ActionViewReports), h.Dashboard.Stats)
	protected.GET("/reports/sales", middleware.RequireAction(authz.ActionViewReports), h.Dashboard.SalesReport)
}
