package handler

import (
	"team-formation/internal/delivery/http/dto"
	"team-formation/internal/domain/collaboration"
	"team-formation/internal/pkg/response"
	"team-formation/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CollaborationHandler struct {
	uc usecase.RecordsUsecase
}

type createCollaborationRequest struct {
	A             string  `json:"a"`
	B             string  `json:"b"`
	Count         int     `json:"count"`
	SuccessRate   float64 `json:"success_rate"`
	Compatibility float64 `json:"compatibility"`
}

type collaborationMetricsRequest struct {
	Count         int     `json:"count"`
	SuccessRate   float64 `json:"success_rate"`
	Compatibility float64 `json:"compatibility"`
}

func NewCollaborationHandler(uc usecase.RecordsUsecase) *CollaborationHandler {
	return &CollaborationHandler{uc: uc}
}

func (h *CollaborationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/collaborations")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Put("/:a/:b", h.Update)
	grp.Delete("/:a/:b", h.Delete)
}

func (h *CollaborationHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListCollaborations(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCollaborationList(items))
}

func (h *CollaborationHandler) Create(c fiber.Ctx) error {
	var req createCollaborationRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	created, err := h.uc.CreateCollaboration(c.Context(), usecase.CollaborationInput{
		A:             req.A,
		B:             req.B,
		Count:         req.Count,
		SuccessRate:   req.SuccessRate,
		Compatibility: req.Compatibility,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.NewCollaborationResponse(created))
}

func (h *CollaborationHandler) Update(c fiber.Ctx) error {
	var req collaborationMetricsRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	updated, err := h.uc.UpdateCollaboration(c.Context(), usecase.CollaborationInput{
		A:             c.Params("a"),
		B:             c.Params("b"),
		Count:         req.Count,
		SuccessRate:   req.SuccessRate,
		Compatibility: req.Compatibility,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCollaborationResponse(updated))
}

// Delete removes every record for the pair in either order.
func (h *CollaborationHandler) Delete(c fiber.Ctx) error {
	pair := collaboration.Pair{A: c.Params("a"), B: c.Params("b")}
	if err := h.uc.DeleteCollaboration(c.Context(), pair); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
