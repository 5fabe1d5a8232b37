package handler

import (
	"strings"

	"intern-match/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func badRequest(msg string, cause error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, msg, cause)
}

func bindBody(c fiber.Ctx, out any) error {
	if err := c.Bind().Body(out); err != nil {
		return badRequest("Invalid request payload", err)
	}
	return nil
}

func parseID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, badRequest(field+" must be a valid id", err)
	}
	return id, nil
}

func currentUser(c fiber.Ctx) (uuid.UUID, error) {
	id := middleware.UserID(c)
	if id == uuid.Nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}
	return id, nil
}
