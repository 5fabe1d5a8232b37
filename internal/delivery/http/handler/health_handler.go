package handler

import (
	"context"
	"time"

	"intern-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			return response.JSON(c, fiber.StatusServiceUnavailable, healthResponse{Status: "error", Message: "database unavailable"})
		}
	}
	return response.JSON(c, fiber.StatusOK, healthResponse{Status: "ok", Message: "Server is running"})
}
