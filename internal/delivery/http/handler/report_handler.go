package handler

import (
	"hireflow/internal/delivery/http/dto"
	"hireflow/internal/delivery/http/middleware"
	"hireflow/internal/pkg/response"
	"hireflow/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ReportHandler struct {
	uc usecase.ReportUsecase
}

func NewReportHandler(uc usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/applications", h.ListApplications)
	r.Get("/applications/export", h.ExportApplications)
	r.Get("/dashboard", h.Dashboard)
	r.Get("/bias", h.Bias)
}

func (h *ReportHandler) ListApplications(c fiber.Ctx) error {
	apps, err := h.uc.ListApplications(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromApplicationsWithJob(apps))
}

func (h *ReportHandler) ExportApplications(c fiber.Ctx) error {
	b, err := h.uc.ExportApplicationsXLSX(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="applications.xlsx"`)
	return c.Send(b)
}

func (h *ReportHandler) Dashboard(c fiber.Ctx) error {
	d, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, d)
}

func (h *ReportHandler) Bias(c fiber.Ctx) error {
	rep, err := h.uc.BiasReport(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, rep)
}
