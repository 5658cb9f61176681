package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/winprintid/pos-api/internal/application/service"
	"github.com/winprintid/pos-api/internal/config"
	"github.com/winprintid/pos-api/internal/infrastructure/database"
	"github.com/winprintid/pos-api/internal/infrastructure/repository"
	"github.com/winprintid/pos-api/internal/presentation/http/handler"
	"github.com/winprintid/pos-api/internal/presentation/http/routes"
	"github.com/winprintid/pos-api/pkg/quotes"
	"github.com/winprintid/pos-api/pkg/utils"
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

	// Reports and the dashboard resolve calendar days in the store's timezone
	location, err := time.LoadLocation(cfg.Database.Timezone)
	if err != nil {
		log.Printf("Warning: invalid timezone %q, using local: %v", cfg.Database.Timezone, err)
		location = time.Local
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	stockPickRepo := repository.NewStockPickRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize quote client
	quoteClient := quotes.NewClient(cfg.Quotes.BaseURL)

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, jwtManager)
	productService := service.NewProductService(productRepo)
	customerService := service.NewCustomerService(customerRepo)
	saleService := service.NewSaleService(saleRepo, productRepo, customerRepo)
	cogsService := service.NewCogsService(saleRepo)
	dashboardService := service.NewDashboardService(saleRepo, productRepo, customerRepo)
	stockService := service.NewStockService(stockPickRepo, quoteClient)
	userService := service.NewUserService(userRepo, roleRepo, permissionRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Product:   handler.NewProductHandler(productService),
		Customer:  handler.NewCustomerHandler(customerService),
		Sale:      handler.NewSaleHandler(saleService, authService, cfg.Invoice),
		Cogs:      handler.NewCogsHandler(cogsService, location),
		Dashboard: handler.NewDashboardHandler(dashboardService, location),
		Stock:     handler.NewStockHandler(stockService),
		User:      handler.NewUserHandler(userService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
