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
	_ "github.com/jhoicas/Inmobiliaria-api/docs"
	"github.com/jhoicas/Inmobiliaria-api/internal/application/approval"
	"github.com/jhoicas/Inmobiliaria-api/internal/application/auth"
	"github.com/jhoicas/Inmobiliaria-api/internal/application/usecase"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/repository"
	"github.com/jhoicas/Inmobiliaria-api/internal/infrastructure/memory"
	"github.com/jhoicas/Inmobiliaria-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Inmobiliaria-api/internal/interfaces/http"
	"github.com/jhoicas/Inmobiliaria-api/pkg/config"
	"github.com/jhoicas/Inmobiliaria-api/pkg/logger"
)

// storage adaptadores de persistencia elegidos por STORAGE_DRIVER.
type storage struct {
	tx         approval.TxRunner
	properties repository.PropertyRepository
	approvals  repository.ApprovalRepository
	settings   repository.ApprovalSettingsRepository
	jobs       repository.WatermarkJobRepository
	companies  repository.CompanyRepository
	users      repository.UserRepository
	close      func()
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.Storage.Driver == "memory" {
		store := memory.NewStore()
		return &storage{
			tx:         store,
			properties: store.Properties(),
			approvals:  store.Approvals(),
			settings:   store.Settings(),
			jobs:       store.WatermarkJobs(),
			companies:  store.Companies(),
			users:      store.Users(),
			close:      func() {},
		}, nil
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		tx:         postgres.NewTxRunner(pool),
		properties: postgres.NewPropertyRepository(pool),
		approvals:  postgres.NewApprovalRepository(pool),
		settings:   postgres.NewApprovalSettingsRepository(pool),
		jobs:       postgres.NewWatermarkJobRepository(pool),
		companies:  postgres.NewCompanyRepository(pool),
		users:      postgres.NewUserRepository(pool),
		close:      pool.Close,
	}, nil
}

// @title                       Inmobiliaria API
// @version                     1.0
// @description                 Back-office inmobiliario: disponibilidad de inmuebles y aprobación de publicación en el sitio.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer store.close()

	settingsSvc := approval.NewSettingsService(store.settings)
	moduleSvc := usecase.NewModuleService(store.companies, store.properties)
	workflow := approval.NewWorkflow(store.tx, settingsSvc,
		approval.WithPublishChecks(moduleSvc.SitePublicationCheck()),
		approval.WithWatermarker(approval.NewJobWatermarker(store.jobs)),
		approval.WithLogger(log),
	)
	queue := approval.NewQueueManager(workflow, store.properties)

	companyUC := usecase.NewCompanyUseCase(store.companies, settingsSvc)
	propertyUC := usecase.NewPropertyUseCase(store.properties, store.approvals)
	feedUC := usecase.NewFeedUseCase(store.companies, store.properties, cfg.Site.PublicBaseURL)
	authUC := auth.NewAuthUseCase(store.users, store.companies, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inmobiliaria API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:     companyUC,
		PropertyUC:    propertyUC,
		FeedUC:        feedUC,
		ModuleService: moduleSvc,
		AuthUC:        authUC,
		Workflow:      workflow,
		Queue:         queue,
		Settings:      settingsSvc,
		JWTSecret:     cfg.JWT.Secret,
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
