package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"backoffice-service/internal/config"
	"backoffice-service/internal/events"
	"backoffice-service/internal/handlers"
	"backoffice-service/internal/middleware"
	"backoffice-service/internal/repository"
	"backoffice-service/internal/seeders"
	"backoffice-service/internal/services"
)

// @title Back Office API
// @version 1.0.0
// @description B2B catalog and dealer ordering service

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.bearer BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis client
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("WARNING: Failed to parse Redis URL: %v (continuing without Redis)", err)
		} else {
			redisClient = redis.NewClient(redisOpts)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := redisClient.Ping(ctx).Err(); err != nil {
				log.Printf("WARNING: Failed to connect to Redis: %v (caching will be disabled)", err)
				redisClient = nil
			} else {
				log.Println("✓ Redis connected successfully")
			}
			cancel()
		}
	}

	// Initialize events publisher
	eventLogger := logrus.New()
	eventLogger.SetFormatter(&logrus.JSONFormatter{})
	eventLogger.SetLevel(logrus.InfoLevel)

	eventsPublisher := events.NewPublisher(redisClient, eventLogger)

	// Initialize repositories with Redis for caching
	categoryRepo := repository.NewCategoryRepository(db, redisClient)
	productRepo := repository.NewProductRepository(db)
	vendorRepo := repository.NewVendorRepository(db, redisClient)
	orderRepo := repository.NewOrderRepository(db)

	// Initialize services
	categoryService := services.NewCategoryService(categoryRepo, eventsPublisher)
	productService := services.NewProductService(productRepo, eventsPublisher)
	vendorService := services.NewVendorService(vendorRepo, eventsPublisher)
	orderService := services.NewOrderService(orderRepo, productRepo, eventsPublisher)
	documentService := services.NewDocumentService(orderService)

	// Seed demo data when requested
	if cfg.SeedData {
		if err := seeders.Seed(db); err != nil {
			log.Printf("WARNING: Seeding failed: %v", err)
		} else {
			log.Println("✓ Demo data seeded")
		}
	}

	// Initialize handlers
	categoryHandler := handlers.NewCategoryHandler(categoryService, cfg.DefaultPageSize, cfg.MaxPageSize)
	productHandler := handlers.NewProductHandler(productService, cfg.DefaultPageSize, cfg.MaxPageSize)
	vendorHandler := handlers.NewVendorHandler(vendorService, productService)
	cartHandler := handlers.NewCartHandler(orderService)
	orderHandler := handlers.NewOrderHandler(orderService, documentService)
	exportHandler := handlers.NewExportHandler(productService, categoryService)

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Health check endpoints (no auth required)
	router.GET("/health", handlers.HealthCheck)
	router.GET("/ready", handlers.HealthCheck)

	// Protected API routes
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	v1 := api.Group("")
	{
		categories := v1.Group("/categories")
		{
			categories.GET("", categoryHandler.ListCategories)
			categories.GET("/tree", categoryHandler.GetCategoryTree)
			categories.GET("/options", categoryHandler.GetCategoryOptions)
			categories.GET("/:id", categoryHandler.GetCategory)
			categories.POST("", categoryHandler.CreateCategory)
			categories.PUT("/:id", categoryHandler.UpdateCategory)
			categories.DELETE("/:id", categoryHandler.DeleteCategory)
		}

		products := v1.Group("/products")
		{
			products.GET("", productHandler.ListProducts)
			products.GET("/archived", productHandler.ListArchivedProducts)
			products.GET("/options", productHandler.GetProductOptions)
			products.GET("/:id", productHandler.GetProduct)
			products.POST("", productHandler.CreateProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.ArchiveProduct)

			products.GET("/:id/variants", productHandler.ListVariants)
			products.POST("/:id/variants", productHandler.AddVariant)
		}

		variants := v1.Group("/variants")
		{
			variants.GET("/:id", productHandler.GetVariant)
			variants.PUT("/:id", productHandler.UpdateVariant)
			variants.DELETE("/:id", productHandler.DeleteVariant)
		}

		vendors := v1.Group("/vendors")
		{
			vendors.GET("", vendorHandler.ListVendors)
			vendors.GET("/archived", vendorHandler.ListArchivedVendors)
			vendors.GET("/options", vendorHandler.GetVendorOptions)
			vendors.GET("/:id", vendorHandler.GetVendor)
			vendors.GET("/:id/products", vendorHandler.ListVendorProducts)
			vendors.POST("", vendorHandler.CreateVendor)
			vendors.PUT("/:id", vendorHandler.UpdateVendor)
			vendors.DELETE("/:id", vendorHandler.ArchiveVendor)
		}

		cart := v1.Group("/cart")
		cart.Use(middleware.DealerMiddleware())
		{
			cart.GET("", cartHandler.GetCart)
			cart.POST("/items", cartHandler.AddToCart)
			cart.PUT("/items/:id", cartHandler.UpdateCartItem)
			cart.DELETE("/items/:id", cartHandler.RemoveCartItem)
			cart.POST("/checkout", cartHandler.Checkout)
		}

		orders := v1.Group("/orders")
		orders.Use(middleware.DealerMiddleware())
		{
			orders.GET("", orderHandler.ListMyOrders)
			orders.GET("/all", middleware.RequireRole("admin"), orderHandler.ListAllOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.GET("/:id/document", orderHandler.DownloadPurchaseOrder)
			orders.PUT("/:id/shipping", orderHandler.UpsertShipping)
		}

		export := v1.Group("/export")
		{
			export.GET("/catalog", exportHandler.ExportCatalog)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Back office service starting on port %s", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	<-quit
	log.Println("Shutting down backoffice-service...")

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("WARNING: Failed to close Redis client: %v", err)
		}
	}

	log.Println("Back office service stopped")
}
