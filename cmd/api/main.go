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

	appauth "github.com/tu-usuario/railparts-api/internal/application/auth"
	appclosing "github.com/tu-usuario/railparts-api/internal/application/closing"
	"github.com/tu-usuario/railparts-api/internal/application/inventory"
	"github.com/tu-usuario/railparts-api/internal/application/usecase"
	infraexcel "github.com/tu-usuario/railparts-api/internal/infrastructure/excel"
	infrapdf "github.com/tu-usuario/railparts-api/internal/infrastructure/pdf"
	"github.com/tu-usuario/railparts-api/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/railparts-api/internal/interfaces/http"
	"github.com/tu-usuario/railparts-api/pkg/config"
	"github.com/tu-usuario/railparts-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	movRepo := postgres.NewMovementRepository(pool)
	closingRepo := postgres.NewClosingRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	diaryRepo := postgres.NewDiaryRepository(pool)
	tripRepo := postgres.NewTripRepository(pool)
	scheduleRepo := postgres.NewScheduleRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	applyUC := inventory.NewApplyMovementUseCase(txRunner, movRepo)
	reverseUC := inventory.NewReverseMovementUseCase(txRunner, closingRepo)
	reconcileUC := inventory.NewReconcileUseCase(txRunner, closingRepo)
	listMovementsUC := inventory.NewListMovementsUseCase(movRepo)

	closingUC := appclosing.NewUseCase(itemRepo, closingRepo, txRunner)
	closingReportUC := appclosing.NewReportUseCase(
		closingRepo,
		infrapdf.NewMarotoClosingGenerator(),
		infraexcel.NewClosingExporter(),
		cfg.App.Division,
	)

	itemUC := usecase.NewItemUseCase(itemRepo, infraexcel.NewItemExporter())
	userUC := usecase.NewUserUseCase(userRepo, auditRepo)
	auditUC := usecase.NewAuditUseCase(auditRepo)
	diaryUC := usecase.NewDiaryUseCase(diaryRepo)
	tripUC := usecase.NewTripUseCase(tripRepo)
	scheduleUC := usecase.NewScheduleUseCase(scheduleRepo)
	projectUC := usecase.NewProjectUseCase(projectRepo)

	authUC := appauth.NewAuthUseCase(userRepo, appauth.JWTConfig{
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
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ItemUC:        itemUC,
		ApplyMovement: applyUC,
		Reverse:       reverseUC,
		Reconcile:     reconcileUC,
		ListMovements: listMovementsUC,
		ClosingUC:     closingUC,
		ClosingReport: closingReportUC,
		UserUC:        userUC,
		AuditUC:       auditUC,
		DiaryUC:       diaryUC,
		TripUC:        tripUC,
		ScheduleUC:    scheduleUC,
		ProjectUC:     projectUC,
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
