package routes

import (
	"team-formation/internal/delivery/http/handler"
	"team-formation/internal/usecase"
	"team-formation/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Handlers groups the usecases served over HTTP. WS may be nil.
type Handlers struct {
	Records   usecase.RecordsUsecase
	Teams     usecase.TeamFormationUsecase
	Lifecycle usecase.ProjectLifecycleUsecase
	Health    map[string]handler.HealthCheck
	WS        *ws.Handler
}

type Registry struct {
	health         *handler.HealthHandler
	employees      *handler.EmployeeHandler
	skills         *handler.SkillHandler
	projects       *handler.ProjectHandler
	collaborations *handler.CollaborationHandler
	ws             *ws.Handler
}

func NewRegistry(h Handlers) *Registry {
	return &Registry{
		health:         handler.NewHealthHandler(h.Health),
		employees:      handler.NewEmployeeHandler(h.Records),
		skills:         handler.NewSkillHandler(h.Records),
		projects:       handler.NewProjectHandler(h.Records, h.Teams, h.Lifecycle),
		collaborations: handler.NewCollaborationHandler(h.Records),
		ws:             h.WS,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)
	if r.ws != nil {
		r.ws.RegisterRoutes(app)
	}
	r.registerV1(app.Group("/api").Group("/v1"))
}

func (r *Registry) registerV1(v1 fiber.Router) {
	r.employees.RegisterRoutes(v1)
	r.skills.RegisterRoutes(v1)
	r.projects.RegisterRoutes(v1)
	r.collaborations.RegisterRoutes(v1)
}
