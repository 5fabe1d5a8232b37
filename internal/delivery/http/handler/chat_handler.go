package handler

import (
	"intern-match/internal/delivery/http/dto"
	"intern-match/internal/pkg/response"
	"intern-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ChatHandler struct {
	uc usecase.ChatUsecase
}

func NewChatHandler(uc usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

func (h *ChatHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("", h.Ask)
}

func (h *ChatHandler) Ask(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.ChatRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	answer, err := h.uc.Ask(c.Context(), userID, req.UserQuery)
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, dto.ChatResponse{Response: answer})
}
