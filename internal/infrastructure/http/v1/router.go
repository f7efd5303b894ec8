// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"espetaria/internal/domain/catalogs/employee"
	"espetaria/internal/domain/catalogs/product"
	"espetaria/internal/domain/catalogs/rawmaterial"
	"espetaria/internal/domain/catalogs/supply"
	"espetaria/internal/domain/production"
	"espetaria/internal/domain/recipe"
	"espetaria/internal/infrastructure/http/v1/handlers"
	"espetaria/internal/infrastructure/http/v1/middleware"
	"espetaria/internal/infrastructure/storage/postgres"
	"espetaria/internal/infrastructure/storage/postgres/catalog_repo"
	"espetaria/internal/infrastructure/storage/postgres/production_repo"
	"espetaria/internal/infrastructure/storage/postgres/recipe_repo"
	"espetaria/pkg/logger"
	"espetaria/pkg/numerator"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	Pool      *postgres.Pool
	TxManager *postgres.TxManager
	Logger    *logger.Logger
	Numerator numerator.Generator

	// AuditStore is optional; when nil productions are not audited
	AuditStore *postgres.AuditStore
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

	baseHandler := handlers.NewBaseHandler()

	// Repositories
	productRepo := catalog_repo.NewProductRepo(cfg.TxManager)
	rawMaterialRepo := catalog_repo.NewRawMaterialRepo(cfg.TxManager)
	supplyRepo := catalog_repo.NewSupplyRepo(cfg.TxManager)
	employeeRepo := catalog_repo.NewEmployeeRepo(cfg.TxManager)
	recipeRepo := recipe_repo.NewRecipeRepo(cfg.TxManager)
	productionRepo := production_repo.NewProductionRepo(cfg.TxManager)

	// Services
	productService := product.NewService(productRepo, cfg.TxManager, cfg.Numerator)
	rawMaterialService := rawmaterial.NewService(rawMaterialRepo, cfg.TxManager, cfg.Numerator)
	supplyService := supply.NewService(supplyRepo, cfg.TxManager, cfg.Numerator)
	employeeService := employee.NewService(employeeRepo, cfg.TxManager, cfg.Numerator)
	recipeService := recipe.NewService(recipeRepo, productService, cfg.TxManager)

	var auditor production.Auditor
	if cfg.AuditStore != nil {
		auditor = production_repo.NewProductionAuditor(cfg.AuditStore)
	}
	productionService := production.NewService(
		productionRepo,
		productService,
		employeeService,
		recipeRepo,
		supplyRepo,
		cfg.TxManager,
		cfg.Numerator,
		auditor,
	)

	// API v1
	api := router.Group("/api/v1")
	{
		// --- PRODUCTS ---
		productHandler := handlers.NewProductHandler(baseHandler, productService)
		recipeHandler := handlers.NewRecipeHandler(baseHandler, recipeService)
		products := api.Group("/products")
		RegisterCatalogRoutes(products, productHandler)
		products.GET(":id/recipe", recipeHandler.ActiveByProduct)
		products.GET(":id/recipes", recipeHandler.ListByProduct)

		// --- RAW MATERIALS ---
		rawMaterialHandler := handlers.NewRawMaterialHandler(baseHandler, rawMaterialService)
		rawMaterials := api.Group("/raw-materials")
		RegisterCatalogRoutes(rawMaterials, rawMaterialHandler)
		rawMaterials.GET("low-stock", rawMaterialHandler.LowStock)

		// --- SUPPLIES ---
		supplyHandler := handlers.NewSupplyHandler(baseHandler, supplyService)
		supplies := api.Group("/supplies")
		RegisterCatalogRoutes(supplies, supplyHandler)
		supplies.GET("low-stock", supplyHandler.LowStock)
		supplies.GET(":id/recipe", supplyHandler.GetRecipe)
		supplies.PUT(":id/recipe", supplyHandler.SaveRecipe)
		supplies.DELETE(":id/recipe", supplyHandler.DeleteRecipe)

		// --- EMPLOYEES ---
		employeeHandler := handlers.NewEmployeeHandler(baseHandler, employeeService)
		RegisterCatalogRoutes(api.Group("/employees"), employeeHandler)

		// --- RECIPES ---
		recipes := api.Group("/recipes")
		recipes.POST("", recipeHandler.Create)
		recipes.GET(":id", recipeHandler.Get)
		recipes.PUT(":id/lines", recipeHandler.UpdateLines)
		recipes.DELETE(":id", recipeHandler.Delete)

		// --- PRODUCTIONS ---
		productionHandler := handlers.NewProductionHandler(baseHandler, productionService)
		productions := api.Group("/productions")
		productions.POST("", productionHandler.Record)
		productions.GET("", productionHandler.List)
		productions.GET(":id", productionHandler.Get)
		productions.GET(":id/movements", productionHandler.Movements)

		// Per-entity ledger history lives under the catalog resources.
		products.GET(":id/movements", productionHandler.ProductMovements)
		rawMaterials.GET(":id/movements", productionHandler.RawMaterialMovements)
		supplies.GET(":id/movements", productionHandler.SupplyMovements)
	}

	return router
}
