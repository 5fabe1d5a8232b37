package handler

import (
	"intern-match/internal/delivery/http/dto"
	"intern-match/internal/pkg/response"
	"intern-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type InternshipHandler struct {
	uc usecase.InternshipUsecase
}

func NewInternshipHandler(uc usecase.InternshipUsecase) *InternshipHandler {
	return &InternshipHandler{uc: uc}
}

func (h *InternshipHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("", h.List)
	r.Get("/:id", h.Get)
}

func (h *InternshipHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, dto.NewInternshipList(items))
}

func (h *InternshipHandler) Get(c fiber.Ctx) error {
	id, err := parseID(c.Params("id"), "id")
	if err != nil {
		return err
	}
	in, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, dto.NewInternshipResponse(in))
}
