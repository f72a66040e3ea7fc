package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/cosmetitrack-api/docs"
	appanalytics "github.com/jhoicas/cosmetitrack-api/internal/application/analytics"
	"github.com/jhoicas/cosmetitrack-api/internal/application/auth"
	"github.com/jhoicas/cosmetitrack-api/internal/application/inventory"
	"github.com/jhoicas/cosmetitrack-api/internal/application/usecase"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/repository"
	"github.com/jhoicas/cosmetitrack-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/cosmetitrack-api/internal/infrastructure/pdf"
	"github.com/jhoicas/cosmetitrack-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/cosmetitrack-api/internal/interfaces/http"
	"github.com/jhoicas/cosmetitrack-api/pkg/config"
	"github.com/jhoicas/cosmetitrack-api/pkg/logger"
)

// backend repositorios de la capa de persistencia elegida por APP_STORAGE.
type backend struct {
	products      repository.ProductRepository
	categories    repository.CategoryRepository
	brands        repository.BrandRepository
	tags          repository.TagRepository
	suppliers     repository.SupplierRepository
	images        repository.ProductImageRepository
	batches       repository.BatchRepository
	qualityChecks repository.QualityCheckRepository
	transactions  repository.TransactionRepository
	reviews       repository.ReviewRepository
	users         repository.UserRepository
	analytics     repository.AnalyticsRepository
	txRunner      inventory.TxRunner
	close         func()
}

// @title        CosmetiTrack API
// @version      1.0
// @description  Inventario de cosméticos: catálogo, lotes, libro de inventario y analítica.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()
	var repos *backend
	if cfg.App.Storage == config.StorageMemory {
		repos = memoryBackend()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	} else {
		repos, err = postgresBackend(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
	}
	defer repos.close()

	ledgerUC := inventory.NewLedgerUseCase(repos.txRunner, repos.transactions)
	replenishmentUC := inventory.NewReplenishmentUseCase(repos.analytics, repos.transactions)
	dashboardUC := appanalytics.NewDashboardUseCase(repos.analytics, repos.transactions, repos.reviews)
	productAnalyticsUC := appanalytics.NewProductAnalyticsUseCase(repos.products, repos.transactions, repos.reviews)

	// PDF: reporte de inventario a partir de las estadísticas del dashboard
	reportUC := appanalytics.NewReportUseCase(dashboardUC, infrapdf.NewMarotoReportGenerator("Reporte de inventario"))

	authUC := auth.NewAuthUseCase(repos.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpRouter.ErrorHandler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "CosmetiTrack API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.App.Storage})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		ProductUC:        usecase.NewProductUseCase(repos.products, repos.txRunner),
		CategoryUC:       usecase.NewCategoryUseCase(repos.categories),
		BrandUC:          usecase.NewBrandUseCase(repos.brands),
		TagUC:            usecase.NewTagUseCase(repos.tags),
		SupplierUC:       usecase.NewSupplierUseCase(repos.suppliers),
		ImageUC:          usecase.NewImageUseCase(repos.images, repos.txRunner),
		BatchUC:          usecase.NewBatchUseCase(repos.batches, repos.txRunner),
		QualityCheckUC:   usecase.NewQualityCheckUseCase(repos.qualityChecks, repos.batches),
		ReviewUC:         usecase.NewReviewUseCase(repos.reviews, repos.txRunner),
		LedgerUC:         ledgerUC,
		ReplenishmentUC:  replenishmentUC,
		DashboardUC:      dashboardUC,
		ProductAnalytics: productAnalyticsUC,
		ReportUC:         reportUC,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func memoryBackend() *backend {
	r := memory.NewRepositories(memory.NewStore())
	return &backend{
		products:      r.Products,
		categories:    r.Categories,
		brands:        r.Brands,
		tags:          r.Tags,
		suppliers:     r.Suppliers,
		images:        r.Images,
		batches:       r.Batches,
		qualityChecks: r.QualityChecks,
		transactions:  r.Transactions,
		reviews:       r.Reviews,
		users:         r.Users,
		analytics:     r.Analytics,
		txRunner:      r.TxRunner,
		close:         func() {},
	}
}

func postgresBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return &backend{
		products:      postgres.NewProductRepository(pool),
		categories:    postgres.NewCategoryRepository(pool),
		brands:        postgres.NewBrandRepository(pool),
		tags:          postgres.NewTagRepository(pool),
		suppliers:     postgres.NewSupplierRepository(pool),
		images:        postgres.NewProductImageRepository(pool),
		batches:       postgres.NewBatchRepository(pool),
		qualityChecks: postgres.NewQualityCheckRepository(pool),
		transactions:  postgres.NewTransactionRepository(pool),
		reviews:       postgres.NewReviewRepository(pool),
		users:         postgres.NewUserRepository(pool),
		analytics:     postgres.NewAnalyticsRepository(pool),
		txRunner:      postgres.NewTxRunner(pool),
		close:         pool.Close,
	}, nil
}
