package handler

import (
	"intern-match/internal/delivery/http/dto"
	"intern-match/internal/pkg/response"
	"intern-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ApplicationHandler struct {
	uc usecase.LedgerUsecase
}

func NewApplicationHandler(uc usecase.LedgerUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("", h.Apply)
	r.Get("", h.List)
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
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

	app, err := h.uc.Apply(c.Context(), userID, internshipID)
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusCreated, dto.NewApplicationResponse(app))
}

func (h *ApplicationHandler) List(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	items, err := h.uc.ListApplications(c.Context(), userID)
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, dto.NewApplicationList(items))
}

type BookmarkHandler struct {
	uc usecase.LedgerUsecase
}

func NewBookmarkHandler(uc usecase.LedgerUsecase) *BookmarkHandler {
	return &BookmarkHandler{uc: uc}
}

func (h *BookmarkHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("", h.Toggle)
	r.Get("", h.List)
}

func (h *BookmarkHandler) Toggle(c fiber.Ctx) error {
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

	on, err := h.uc.ToggleBookmark(c.Context(), userID, internshipID)
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, dto.BookmarkToggleResponse{Bookmarked: on})
}

func (h *BookmarkHandler) List(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	items, err := h.uc.ListBookmarks(c.Context(), userID)
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, dto.NewBookmarkList(items))
}
