package handler

import (
	"team-formation/internal/delivery/http/dto"
	"team-formation/internal/pkg/response"
	"team-formation/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc usecase.RecordsUsecase
}

type skillRequest struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Level      string `json:"level"`
	EmployeeID string `json:"employee_id"`
}

func NewSkillHandler(uc usecase.RecordsUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/skills")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListSkills(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillList(items))
}

func (h *SkillHandler) Create(c fiber.Ctx) error {
	var req skillRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	created, err := h.uc.CreateSkill(c.Context(), usecase.SkillInput{
		ID:         req.ID,
		Name:       req.Name,
		Category:   req.Category,
		Level:      req.Level,
		EmployeeID: req.EmployeeID,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.NewSkillResponse(created))
}

// Update takes the skill id from the path; an id in the body is ignored.
func (h *SkillHandler) Update(c fiber.Ctx) error {
	var req skillRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	updated, err := h.uc.UpdateSkill(c.Context(), usecase.SkillInput{
		ID:         c.Params("id"),
		Name:       req.Name,
		Category:   req.Category,
		Level:      req.Level,
		EmployeeID: req.EmployeeID,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillResponse(updated))
}

func (h *SkillHandler) Delete(c fiber.Ctx) error {
	if err := h.uc.DeleteSkill(c.Context(), c.Params("id")); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
