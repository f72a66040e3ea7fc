package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/cosmetitrack-api/internal/application/analytics"
	"github.com/jhoicas/cosmetitrack-api/internal/application/auth"
	"github.com/jhoicas/cosmetitrack-api/internal/application/inventory"
	"github.com/jhoicas/cosmetitrack-api/internal/application/usecase"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	ProductUC        *usecase.ProductUseCase
	CategoryUC       *usecase.CategoryUseCase
	BrandUC          *usecase.BrandUseCase
	TagUC            *usecase.TagUseCase
	SupplierUC       *usecase.SupplierUseCase
	ImageUC          *usecase.ImageUseCase
	BatchUC          *usecase.BatchUseCase
	QualityCheckUC   *usecase.QualityCheckUseCase
	ReviewUC         *usecase.ReviewUseCase
	LedgerUC         *inventory.LedgerUseCase
	ReplenishmentUC  *inventory.ReplenishmentUseCase
	DashboardUC      *appanalytics.DashboardUseCase
	ProductAnalytics *appanalytics.ProductAnalyticsUseCase
	ReportUC         *appanalytics.ReportUseCase // opcional
	JWTSecret        string
}

// crudHandler operaciones comunes de los recursos del catálogo.
type crudHandler interface {
	List(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	GetByID(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	writers := RequireRole(entity.RoleAdmin, entity.RoleManager)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/users", adminOnly, authHandler.CreateUser)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.ProductAnalytics)
	products.Get("/", productHandler.List)
	products.Post("/", writers, productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", writers, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)
	products.Get("/:id/forecast", productHandler.Forecast)
	products.Get("/:id/analytics", productHandler.Analytics)

	// Catálogo
	catalog := map[string]crudHandler{
		"/categories": NewCategoryHandler(deps.CategoryUC),
		"/brands":     NewBrandHandler(deps.BrandUC),
		"/tags":       NewTagHandler(deps.TagUC),
		"/suppliers":  NewSupplierHandler(deps.SupplierUC),
	}
	for prefix, h := range catalog {
		g := protected.Group(prefix)
		g.Get("/", h.List)
		g.Post("/", writers, h.Create)
		g.Get("/:id", h.GetByID)
		g.Put("/:id", writers, h.Update)
		g.Delete("/:id", adminOnly, h.Delete)
	}

	// Imágenes y reseñas
	imageHandler := NewImageHandler(deps.ImageUC)
	protected.Get("/product-images", imageHandler.List)
	protected.Post("/product-images", imageHandler.Create)

	reviewHandler := NewReviewHandler(deps.ReviewUC)
	protected.Get("/reviews", reviewHandler.List)
	protected.Post("/reviews", reviewHandler.Create)

	// Lotes y control de calidad
	batchHandler := NewBatchHandler(deps.BatchUC, deps.QualityCheckUC)
	batches := protected.Group("/batches")
	batches.Get("/", batchHandler.List)
	batches.Post("/", batchHandler.Create)
	batches.Get("/:id", batchHandler.GetByID)
	protected.Get("/quality-checks", batchHandler.ListQualityChecks)
	protected.Post("/quality-checks", batchHandler.CreateQualityCheck)

	// Libro de inventario
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.ReplenishmentUC)
	invGroup.Get("/transactions", inventoryHandler.ListTransactions)
	invGroup.Post("/transactions", inventoryHandler.RecordTransaction)
	invGroup.Get("/replenishment", inventoryHandler.GetReplenishmentList)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.ReportUC)
	dashboard.Get("/stats", dashboardHandler.GetStats)
	dashboard.Get("/report", dashboardHandler.GetReport)
}
