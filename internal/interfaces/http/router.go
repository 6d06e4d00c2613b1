package http

import (
	"github.com/gofiber/fiber/v2"

	appauth "github.com/tu-usuario/railparts-api/internal/application/auth"
	appclosing "github.com/tu-usuario/railparts-api/internal/application/closing"
	"github.com/tu-usuario/railparts-api/internal/application/inventory"
	"github.com/tu-usuario/railparts-api/internal/application/usecase"
	domauth "github.com/tu-usuario/railparts-api/internal/domain/auth"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *appauth.AuthUseCase
	ItemUC        *usecase.ItemUseCase
	ApplyMovement *inventory.ApplyMovementUseCase
	Reverse       *inventory.ReverseMovementUseCase
	Reconcile     *inventory.ReconcileUseCase
	ListMovements *inventory.ListMovementsUseCase
	ClosingUC     *appclosing.UseCase
	ClosingReport *appclosing.ReportUseCase
	UserUC        *usecase.UserUseCase
	AuditUC       *usecase.AuditUseCase
	DiaryUC       *usecase.DiaryUseCase
	TripUC        *usecase.TripUseCase
	ScheduleUC    *usecase.ScheduleUseCase
	ProjectUC     *usecase.ProjectUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Items (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", RequirePermission(domauth.ActionItemWrite), itemHandler.Create)
	items.Get("/", RequirePermission(domauth.ActionItemRead), itemHandler.List)
	items.Get("/export", RequirePermission(domauth.ActionItemRead), itemHandler.Export)
	items.Get("/:id", RequirePermission(domauth.ActionItemRead), itemHandler.GetByID)
	items.Put("/:id", RequirePermission(domauth.ActionItemWrite), itemHandler.Update)

	// Inventory movements (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ApplyMovement, deps.Reverse, deps.Reconcile, deps.ListMovements)
	invGroup.Post("/movements", RequirePermission(domauth.ActionMovementApply), inventoryHandler.ApplyMovement)
	invGroup.Get("/movements", RequirePermission(domauth.ActionMovementRead), inventoryHandler.ListMovements)
	invGroup.Delete("/movements/:id", RequirePermission(domauth.ActionMovementReverse), inventoryHandler.ReverseMovement)
	invGroup.Post("/items/:id/recheck", RequirePermission(domauth.ActionItemWrite), inventoryHandler.RecheckItem)
	invGroup.Post("/items/:id/rebuild", RequirePermission(domauth.ActionItemWrite), inventoryHandler.RebuildItem)

	// Closings (protegido)
	closings := protected.Group("/closings")
	closingHandler := NewClosingHandler(deps.ClosingUC, deps.ClosingReport)
	closings.Get("/preview", RequirePermission(domauth.ActionClosingRead), closingHandler.Preview)
	closings.Post("/", RequirePermission(domauth.ActionClosingCommit), closingHandler.Commit)
	closings.Get("/", RequirePermission(domauth.ActionClosingRead), closingHandler.ListDates)
	closings.Get("/:date", RequirePermission(domauth.ActionClosingRead), closingHandler.ListByDate)
	closings.Get("/:date/report.pdf", RequirePermission(domauth.ActionClosingRead), closingHandler.DownloadPDF)
	closings.Get("/:date/report.xlsx", RequirePermission(domauth.ActionClosingRead), closingHandler.DownloadExcel)

	// Users (solo admin)
	users := protected.Group("/users", RequirePermission(domauth.ActionUserManage))
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)

	// Audit (solo admin)
	auditHandler := NewAuditHandler(deps.AuditUC)
	protected.Get("/audit", RequirePermission(domauth.ActionAuditRead), auditHandler.List)

	// Diaries (protegido; el dueño se verifica en el caso de uso)
	diaries := protected.Group("/diaries")
	diaryHandler := NewDiaryHandler(deps.DiaryUC)
	diaries.Post("/", RequirePermission(domauth.ActionDiaryWrite), diaryHandler.Create)
	diaries.Get("/", RequirePermission(domauth.ActionDiaryRead), diaryHandler.List)
	diaries.Get("/:id", RequirePermission(domauth.ActionDiaryRead), diaryHandler.GetByID)
	diaries.Put("/:id", RequirePermission(domauth.ActionDiaryWrite), diaryHandler.Update)
	diaries.Delete("/:id", RequirePermission(domauth.ActionDiaryWrite), diaryHandler.Delete)

	// Trips (protegido; aprobación verificada en el caso de uso)
	trips := protected.Group("/trips")
	tripHandler := NewTripHandler(deps.TripUC)
	trips.Post("/", RequirePermission(domauth.ActionTripWrite), tripHandler.Create)
	trips.Get("/", RequirePermission(domauth.ActionTripRead), tripHandler.List)
	trips.Get("/:id", RequirePermission(domauth.ActionTripRead), tripHandler.GetByID)
	trips.Put("/:id", RequirePermission(domauth.ActionTripWrite), tripHandler.Update)

	// Schedules (protegido)
	schedules := protected.Group("/schedules")
	scheduleHandler := NewScheduleHandler(deps.ScheduleUC)
	schedules.Post("/", RequirePermission(domauth.ActionScheduleWrite), scheduleHandler.Create)
	schedules.Get("/", RequirePermission(domauth.ActionScheduleRead), scheduleHandler.ListVisible)
	schedules.Put("/:id", RequirePermission(domauth.ActionScheduleWrite), scheduleHandler.Update)
	schedules.Delete("/:id", RequirePermission(domauth.ActionScheduleWrite), scheduleHandler.Delete)

	// Projects (protegido)
	projects := protected.Group("/projects")
	projectHandler := NewProjectHandler(deps.ProjectUC)
	projects.Post("/", RequirePermission(domauth.ActionProjectWrite), projectHandler.Create)
	projects.Get("/", RequirePermission(domauth.ActionProjectRead), projectHandler.List)
	projects.Get("/:id", RequirePermission(domauth.ActionProjectRead), projectHandler.GetByID)
	projects.Put("/:id", RequirePermission(domauth.ActionProjectWrite), projectHandler.Update)
}
