package handler

import (
	"errors"
	"time"

	"hireflow/internal/delivery/http/dto"
	"hireflow/internal/delivery/http/middleware"
	"hireflow/internal/pkg/response"
	"hireflow/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobHandler struct {
	uc usecase.JobUsecase
}

type jobRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
}

func NewJobHandler(uc usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

// RegisterRoutes wires the read-only endpoints; both roles can browse
// postings.
func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/:id", h.Get)
}

// RegisterAdminRoutes wires the mutating endpoints; the caller mounts
// them behind the admin role check.
func (h *JobHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	in, err := bindJobInput(c)
	if err != nil {
		return err
	}

	job, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.FromJob(job))
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	in, err := bindJobInput(c)
	if err != nil {
		return err
	}

	job, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromJob(job))
}

func (h *JobHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job deleted", nil)
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	job, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromJob(job))
}

func (h *JobHandler) List(c fiber.Ctx) error {
	jobs, err := h.uc.List(c.Context(), c.Query("title"))
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromJobs(jobs))
}

func bindJobInput(c fiber.Ctx) (usecase.JobInput, error) {
	var req jobRequest
	if err := c.Bind().Body(&req); err != nil {
		return usecase.JobInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var deadline time.Time
	if req.Deadline != "" {
		d, err := time.Parse("2006-01-02", req.Deadline)
		if err != nil {
			return usecase.JobInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Deadline must be YYYY-MM-DD", nil, err)
		}
		deadline = d
	}

	return usecase.JobInput{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    deadline,
	}, nil
}

func mapJobUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrJobTitleTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Job title already exists", nil, err)
	case errors.Is(err, usecase.ErrDeadlineBeforePosted):
		return middleware.NewAppError(fiber.StatusBadRequest, "Deadline must not be before the posting date", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
