package handler

import (
	"context"
	"time"

	"team-formation/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]HealthCheck
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health answers 200 while every check passes and 503 otherwise.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	if len(h.checks) == 0 {
		return response.Success(c, fiber.StatusOK, response.MessageOK, healthResponse{Status: "up"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	res := healthResponse{Status: "up", Checks: make(map[string]string, len(h.checks))}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			res.Status = "down"
			res.Checks[name] = err.Error()
			continue
		}
		res.Checks[name] = "up"
	}
	if res.Status != "up" {
		return response.Error(c, fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, res)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}
