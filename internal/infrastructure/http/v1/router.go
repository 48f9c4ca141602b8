// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"stockmark/internal/domain/catalogs/company"
	"stockmark/internal/domain/catalogs/product"
	"stockmark/internal/domain/documents/income"
	"stockmark/internal/domain/documents/outcome"
	"stockmark/internal/domain/markings"
	"stockmark/internal/infrastructure/http/v1/handlers"
	"stockmark/internal/infrastructure/http/v1/middleware"
	"stockmark/internal/infrastructure/storage/postgres"
	"stockmark/internal/infrastructure/storage/postgres/catalog_repo"
	"stockmark/internal/infrastructure/storage/postgres/document_repo"
	"stockmark/internal/infrastructure/storage/postgres/marking_repo"
	"stockmark/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	Pool         *postgres.Pool
	Logger       *logger.Logger
	JWTValidator middleware.JWTValidator
}

// NewRouter wires repositories, services and handlers into the Gin
// router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Order matters: recovery first, error rendering last before
	// handlers.
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	txm := postgres.NewTxManager(cfg.Pool)

	auditor, err := postgres.NewAuditService(txm)
	if err != nil {
		// zstd setup only fails on invalid options, which is a
		// programming error.
		panic(err)
	}

	companyRepo := catalog_repo.NewCompanyRepo(txm)
	productRepo := catalog_repo.NewProductRepo(txm)
	incomeRepo := document_repo.NewIncomeRepo(txm)
	outcomeRepo := document_repo.NewOutcomeRepo(txm)
	markingRepo := marking_repo.NewMarkingRepo(txm)

	companyService := company.NewService(companyRepo)
	productService := product.NewService(productRepo)
	markingService := markings.NewService(markingRepo, incomeRepo, auditor, txm)
	incomeService := income.NewService(incomeRepo, markingRepo, companyService, auditor, txm)
	outcomeService := outcome.NewService(outcomeRepo, markingRepo, companyService, auditor, txm)

	healthHandler := handlers.NewHealthHandler(cfg.Pool.Pool)
	companyHandler := handlers.NewCompanyHandler(companyService)
	productHandler := handlers.NewProductHandler(productService)
	incomeHandler := handlers.NewIncomeHandler(incomeService)
	outcomeHandler := handlers.NewOutcomeHandler(outcomeService)
	markingHandler := handlers.NewMarkingHandler(markingService)

	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	api := router.Group("/api/v1")
	api.Use(middleware.Auth(cfg.JWTValidator))

	write := middleware.RequireWrite()

	companies := api.Group("/companies")
	{
		companies.GET("", companyHandler.List)
		companies.GET("/:companyId", companyHandler.Get)
	}

	products := api.Group("/products")
	{
		products.GET("", productHandler.List)
		products.GET("/select", productHandler.Select)
		products.GET("/:productId", productHandler.Get)
		products.GET("/:productId/stock", productHandler.Stock)
		products.POST("", write, productHandler.Create)
	}

	incomes := api.Group("/incomes")
	{
		incomes.GET("", incomeHandler.List)
		incomes.GET("/:incomeId", incomeHandler.Get)
		incomes.POST("", write, incomeHandler.Create)
		incomes.PUT("/:incomeId", write, incomeHandler.Update)
		incomes.POST("/:incomeId/archive", write, incomeHandler.Archive)
		incomes.POST("/:incomeId/unarchive", write, incomeHandler.Unarchive)
		incomes.DELETE("/:incomeId", write, incomeHandler.Delete)

		incomes.PUT("/:incomeId/products/:productId/markings/:markingId", write, markingHandler.Edit)
		incomes.DELETE("/:incomeId/products/:productId/markings/:markingId", write, markingHandler.Delete)
	}

	outcomes := api.Group("/outcomes")
	{
		outcomes.GET("", outcomeHandler.List)
		outcomes.GET("/:outcomeId", outcomeHandler.Get)
		outcomes.POST("", write, outcomeHandler.Create)
		outcomes.PUT("/:outcomeId", write, outcomeHandler.Update)
		outcomes.POST("/:outcomeId/archive", write, outcomeHandler.Archive)
		outcomes.POST("/:outcomeId/unarchive", write, outcomeHandler.Unarchive)
		outcomes.DELETE("/:outcomeId", write, outcomeHandler.Delete)
	}

	api.POST("/markings/check", markingHandler.Check)

	return router
}
