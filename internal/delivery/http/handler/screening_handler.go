package handler

import (
	"errors"

	"hireflow/internal/delivery/http/dto"
	"hireflow/internal/delivery/http/middleware"
	"hireflow/internal/pkg/response"
	"hireflow/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ScreeningHandler struct {
	uc usecase.ScreeningUsecase
}

// inviteRequest uses pointers for the band so an omitted end falls back
// to the configured default while an explicit 0 is still an explicit 0.
type inviteRequest struct {
	MinScore       *float64 `json:"min_score"`
	MaxScore       *float64 `json:"max_score"`
	ApplicationIDs []string `json:"application_ids"`
}

func NewScreeningHandler(uc usecase.ScreeningUsecase) *ScreeningHandler {
	return &ScreeningHandler{uc: uc}
}

func (h *ScreeningHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/run", h.RunPending)
	r.Post("/stage2", h.RunStage2)
	r.Post("/invitations", h.Invite)
	r.Post("/applications/:id", h.Screen)
	r.Post("/applications/:id/rescreen", h.Rescreen)
	r.Post("/applications/:id/approve", h.Approve)
}

func (h *ScreeningHandler) RunPending(c fiber.Ctx) error {
	results, err := h.uc.RunPending(c.Context())
	if err != nil {
		return mapScreeningUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Screening completed", results)
}

func (h *ScreeningHandler) Screen(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid application id", nil, err)
	}

	res, err := h.uc.Screen(c.Context(), id)
	if err != nil {
		return mapScreeningUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Application screened", res)
}

func (h *ScreeningHandler) Rescreen(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid application id", nil, err)
	}

	res, err := h.uc.Rescreen(c.Context(), id)
	if err != nil {
		return mapScreeningUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Application re-screened", res)
}

func (h *ScreeningHandler) Approve(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid application id", nil, err)
	}

	app, err := h.uc.Approve(c.Context(), id)
	if err != nil {
		return mapScreeningUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Application approved", dto.FromApplication(app))
}

func (h *ScreeningHandler) RunStage2(c fiber.Ctx) error {
	results, err := h.uc.RunStage2(c.Context())
	if err != nil {
		return mapScreeningUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Second stage completed", results)
}

func (h *ScreeningHandler) Invite(c fiber.Ctx) error {
	var req inviteRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	ids := make([]uuid.UUID, 0, len(req.ApplicationIDs))
	for _, raw := range req.ApplicationIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid application id", nil, err)
		}
		ids = append(ids, id)
	}

	results, err := h.uc.Invite(c.Context(), usecase.InviteInput{
		MinScore:       req.MinScore,
		MaxScore:       req.MaxScore,
		ApplicationIDs: ids,
	})
	if err != nil {
		return mapScreeningUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Invitations processed", results)
}

func mapScreeningUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, usecase.ErrAlreadyScreened):
		return middleware.NewAppError(fiber.StatusConflict, "Application already screened", nil, err)
	case errors.Is(err, usecase.ErrNotApprovable):
		return middleware.NewAppError(fiber.StatusConflict, "Only successfully screened applications can be approved", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
