package handler

import (
	"context"

	"intern-match/internal/delivery/http/dto"
	"intern-match/internal/pkg/response"
	useruc "intern-match/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProfileService interface {
	GetMe(ctx context.Context, userID uuid.UUID) (useruc.Me, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in useruc.UpdateProfileInput) (useruc.Me, error)
}

type ProfileHandler struct {
	svc ProfileService
}

func NewProfileHandler(svc ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("", h.Get)
	r.Put("", h.Update)
}

func (h *ProfileHandler) Get(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	me, err := h.svc.GetMe(c.Context(), userID)
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, dto.NewProfileResponse(me))
}

func (h *ProfileHandler) Update(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.ProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	me, err := h.svc.UpdateProfile(c.Context(), userID, req.Input())
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, dto.NewProfileResponse(me))
}
