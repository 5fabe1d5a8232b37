package handler

import (
	"strconv"
	"strings"

	"intern-match/internal/delivery/http/dto"
	"intern-match/internal/pkg/response"
	"intern-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type RecommendationHandler struct {
	uc usecase.RecommendationUsecase
}

func NewRecommendationHandler(uc usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("", h.List)
	r.Post("/dismiss", h.Dismiss)
}

// List returns ranked matches. limit is optional; 0 means the configured
// maximum.
func (h *RecommendationHandler) List(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return usecase.ErrInvalidLimit
		}
		limit = n
	}

	recs, err := h.uc.Recommend(c.Context(), userID, limit)
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, dto.NewRecommendationList(recs))
}

func (h *RecommendationHandler) Dismiss(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.InternshipRefRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	internshipID, err := parseID(req.InternshipID, "internship_id")
	if err != nil {
		return err
	}
	if err := h.uc.Dismiss(c.Context(), userID, internshipID); err != nil {
		return err
	}
	return response.NoContent(c)
}
