package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/winprintid/pos-api/internal/config"
	domainRepo "github.com/winprintid/pos-api/internal/domain/repository"
	"github.com/winprintid/pos-api/internal/presentation/http/handler"
	"github.com/winprintid/pos-api/internal/presentation/http/middleware"
	"github.com/winprintid/pos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Customer  *handler.CustomerHandler
	Sale      *handler.SaleHandler
	Cogs      *handler.CogsHandler
	Dashboard *handler.DashboardHandler
	Stock     *handler.StockHandler
	User      *handler.UserHandler
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
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: deps.Cfg.RateLimit.RequestsPerSecond,
			BurstSize:         deps.Cfg.RateLimit.Burst,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.GET("/profile", h.Auth.Me)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Dashboard
	registerDashboardRoutes(protected, h)

	// Products
	registerProductRoutes(protected, h)

	// Customers
	registerCustomerRoutes(protected, h)

	// Sales
	registerSaleRoutes(protected, h, deps)

	// Reports
	registerReportRoutes(protected, h)

	// Stock watchlist
	registerStockRoutes(protected, h)

	// Users (Admin)
	registerUserRoutes(protected, h)
}

func registerDashboardRoutes(protected *gin.RouterGroup, h *Handlers) {
	dashboard := protected.Group("/dashboard")
	dashboard.Use(middleware.RequirePermission("view-dashboard"))
	{
		dashboard.GET("", h.Dashboard.Summary)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	products.Use(middleware.RequirePermission("manage-products"))
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	customers.Use(middleware.RequirePermission("manage-customers"))
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	sales := protected.Group("/sales")
	sales.Use(middleware.RequirePermission("manage-sales"))
	{
		sales.GET("", h.Sale.List)
		// Sale creation uses idempotency middleware to prevent duplicates
		sales.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Sale.Create)
		sales.GET("/:id", h.Sale.Get)
		sales.GET("/:id/invoice", h.Sale.Invoice)
		sales.PUT("/:id", h.Sale.Update)
		sales.DELETE("/:id", h.Sale.Delete)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	reports.Use(middleware.RequirePermission("view-reports"))
	{
		reports.GET("/cogs", h.Cogs.Report)
	}
}

func registerStockRoutes(protected *gin.RouterGroup, h *Handlers) {
	stocks := protected.Group("/stocks")
	stocks.Use(middleware.RequirePermission("manage-stocks"))
	{
		stocks.GET("", h.Stock.List)
		stocks.POST("", h.Stock.Create)
		stocks.POST("/refresh", h.Stock.RefreshQuotes)
		stocks.GET("/:id", h.Stock.Get)
		stocks.PUT("/:id", h.Stock.Update)
		stocks.DELETE("/:id", h.Stock.Delete)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequirePermission("manage-users"))
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id/roles", h.User.UpdateRoles)
		users.DELETE("/:id", h.User.Delete)
	}

	roles := protected.Group("/roles")
	roles.Use(middleware.RequirePermission("manage-users"))
	{
		roles.GET("", h.User.ListRoles)
	}

	permissions := protected.Group("/permissions")
	permissions.Use(middleware.RequirePermission("manage-users"))
	{
		permissions.GET("", h.User.ListPermissions)
	}
}
