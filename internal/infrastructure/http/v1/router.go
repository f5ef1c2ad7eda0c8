// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"cartline/internal/domain/catalog/product"
	"cartline/internal/domain/draft"
	"cartline/internal/domain/stock"
	"cartline/internal/infrastructure/http/v1/handlers"
	"cartline/internal/infrastructure/http/v1/middleware"
	"cartline/internal/infrastructure/storage/postgres"
	"cartline/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	ProductService *product.Service
	StockService   *stock.Service
	DraftService   *draft.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	base := handlers.NewBaseHandler()
	productHandler := handlers.NewProductHandler(base, cfg.ProductService)
	stockHandler := handlers.NewStockHandler(base, cfg.StockService, cfg.ProductService)
	draftHandler := handlers.NewDraftHandler(base, cfg.DraftService)

	// API v1
	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.POST("", productHandler.Create)
			products.GET("", productHandler.List)
			products.GET("/:id", productHandler.Get)
			products.PUT("/:id", productHandler.Update)
			products.DELETE("/:id", productHandler.Delete)
			products.GET("/sku/:sku", productHandler.GetBySKU)
		}

		stockRoutes := v1.Group("/stock")
		{
			stockRoutes.GET("", stockHandler.ListBalances)
			stockRoutes.GET("/:productId", stockHandler.GetSnapshot)
			stockRoutes.POST("/:productId/receipts", stockHandler.RecordReceipt)
			stockRoutes.POST("/:productId/issues", stockHandler.RecordIssue)
		}

		drafts := v1.Group("/drafts")
		{
			drafts.POST("", draftHandler.Start)
			drafts.GET("/:id", draftHandler.Get)
			drafts.POST("/:id/lines", draftHandler.AddLine)
			drafts.PUT("/:id/lines/:index", draftHandler.EditLine)
			drafts.DELETE("/:id/lines/:index", draftHandler.RemoveLine)
			drafts.POST("/:id/submit", draftHandler.Submit)
		}
	}

	return router
}
