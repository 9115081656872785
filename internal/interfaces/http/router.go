package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inmobiliaria-api/internal/application/approval"
	"github.com/jhoicas/Inmobiliaria-api/internal/application/auth"
	"github.com/jhoicas/Inmobiliaria-api/internal/application/usecase"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC     *usecase.CompanyUseCase
	PropertyUC    *usecase.PropertyUseCase
	FeedUC        *usecase.FeedUseCase
	ModuleService *usecase.ModuleService
	AuthUC        *auth.AuthUseCase
	Workflow      *approval.Workflow
	Queue         *approval.QueueManager
	Settings      *approval.SettingsService
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (alta y consulta públicas; módulos solo admin)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id/modules/:module",
		AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), companyHandler.SetModule)

	// Feed del sitio público
	feedHandler := NewFeedHandler(deps.FeedUC)
	api.Get("/public/companies/:company_id/feed.xml", feedHandler.Feed)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	approvers := RequireRole(entity.RoleAdmin, entity.RoleGestor)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleGestor, entity.RoleCorretor)

	// Inmuebles: cualquier rol puede pedir transiciones
	properties := protected.Group("/properties", anyRole, RequireModule(entity.ModuleProperties, deps.ModuleService))
	propertyHandler := NewPropertyHandler(deps.PropertyUC, deps.Workflow)
	properties.Post("/", propertyHandler.Create)
	properties.Get("/", propertyHandler.List)
	properties.Get("/:id", propertyHandler.GetByID)
	properties.Put("/:id", propertyHandler.Update)
	properties.Get("/:id/eligibility", propertyHandler.Eligibility)
	properties.Get("/:id/approvals", propertyHandler.History)
	properties.Post("/:id/actions/:action", propertyHandler.Action)

	// Colas de aprobación
	approvals := protected.Group("/approvals", anyRole)
	approvalHandler := NewApprovalHandler(deps.Queue, deps.Workflow)
	approvals.Get("/mine", approvalHandler.ListMine)
	approvals.Post("/", approvalHandler.Enqueue)
	approvals.Get("/pending", approvers, approvalHandler.ListPending)
	approvals.Post("/:id/approve", approvers, approvalHandler.Approve)
	approvals.Post("/:id/reject", approvers, approvalHandler.Reject)

	// Configuración de aprobación (lectura para todos, cambios solo admin)
	settings := protected.Group("/settings", anyRole)
	settingsHandler := NewSettingsHandler(deps.Settings)
	settings.Get("/approval", settingsHandler.Get)
	settings.Patch("/approval", RequireRole(entity.RoleAdmin), settingsHandler.Update)
}
