package handler

import (
	"team-formation/internal/delivery/http/dto"
	"team-formation/internal/pkg/response"
	"team-formation/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type EmployeeHandler struct {
	uc usecase.RecordsUsecase
}

type employeeRequest struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Age          int      `json:"age"`
	Skills       []string `json:"skills"`
	Available    *bool    `json:"available"`
	PastProjects []string `json:"past_projects"`
}

func (r employeeRequest) input(id string) usecase.EmployeeInput {
	available := true
	if r.Available != nil {
		available = *r.Available
	}
	if id == "" {
		id = r.ID
	}
	return usecase.EmployeeInput{
		ID:           id,
		Name:         r.Name,
		Age:          r.Age,
		Skills:       r.Skills,
		Available:    available,
		PastProjects: r.PastProjects,
	}
}

func NewEmployeeHandler(uc usecase.RecordsUsecase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

func (h *EmployeeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/employees")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Get("/:id", h.Get)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

func (h *EmployeeHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListEmployees(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewEmployeeList(items))
}

func (h *EmployeeHandler) Get(c fiber.Ctx) error {
	e, err := h.uc.GetEmployee(c.Context(), c.Params("id"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewEmployeeResponse(e))
}

func (h *EmployeeHandler) Create(c fiber.Ctx) error {
	var req employeeRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	created, err := h.uc.CreateEmployee(c.Context(), req.input(""))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.NewEmployeeResponse(created))
}

// Update takes the id from the path; an id in the body is ignored.
func (h *EmployeeHandler) Update(c fiber.Ctx) error {
	var req employeeRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	updated, err := h.uc.UpdateEmployee(c.Context(), req.input(c.Params("id")))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewEmployeeResponse(updated))
}

func (h *EmployeeHandler) Delete(c fiber.Ctx) error {
	if err := h.uc.DeleteEmployee(c.Context(), c.Params("id")); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
