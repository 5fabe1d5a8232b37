package handler

import (
	"intern-match/internal/delivery/http/dto"
	"intern-match/internal/importer"
	"intern-match/internal/pkg/response"
	"intern-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AdminHandler struct {
	ledger      usecase.LedgerUsecase
	internships usecase.InternshipUsecase
}

func NewAdminHandler(ledger usecase.LedgerUsecase, internships usecase.InternshipUsecase) *AdminHandler {
	return &AdminHandler{ledger: ledger, internships: internships}
}

func (h *AdminHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/applications", h.ListApplications)
	r.Patch("/applications/:id/status", h.SetStatus)
	r.Post("/internships", h.CreateInternship)
	r.Post("/internships/import", h.ImportInternships)
}

func (h *AdminHandler) ListApplications(c fiber.Ctx) error {
	items, err := h.ledger.ListAllApplications(c.Context(), c.Query("status"))
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, dto.NewApplicationList(items))
}

func (h *AdminHandler) SetStatus(c fiber.Ctx) error {
	id, err := parseID(c.Params("id"), "id")
	if err != nil {
		return err
	}
	var req dto.StatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	app, err := h.ledger.SetApplicationStatus(c.Context(), id, req.Status)
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, dto.NewApplicationResponse(app))
}

func (h *AdminHandler) CreateInternship(c fiber.Ctx) error {
	var req dto.InternshipRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	created, err := h.internships.Create(c.Context(), req.Internship())
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusCreated, dto.NewInternshipResponse(created))
}

// ImportInternships takes a catalog feed in the importer's format.
func (h *AdminHandler) ImportInternships(c fiber.Ctx) error {
	items, err := importer.Decode(c.Body())
	if err != nil {
		return badRequest(err.Error(), err)
	}
	n, err := h.internships.Import(c.Context(), items)
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, dto.ImportResponse{Received: len(items), Upserted: n})
}
