package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hireflow/internal/domain/lifecycle"
	"hireflow/internal/domain/screening"
	"hireflow/internal/logger"
	"hireflow/internal/notification"
	"hireflow/internal/pkg/validate"
	"hireflow/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("you have already applied for this job")
)

type SubmitApplicationInput struct {
	JobID  uuid.UUID
	Name   string
	Email  string
	Gender string
	Resume string
}

type ApplicationUsecase interface {
	Submit(ctx context.Context, userID uuid.UUID, in SubmitApplicationInput) (repository.Application, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]repository.ApplicationWithJob, error)
	Get(ctx context.Context, id uuid.UUID) (repository.Application, error)
}

type Applications struct {
	apps     repository.ApplicationRepository
	jobs     repository.JobRepository
	notifier Notifier
	logger   *zap.Logger

	now func() time.Time
}

func NewApplications(apps repository.ApplicationRepository, jobs repository.JobRepository, notifier Notifier, logger *zap.Logger) *Applications {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Applications{apps: apps, jobs: jobs, notifier: notifier, logger: logger, now: time.Now}
}

func (u *Applications) Submit(ctx context.Context, userID uuid.UUID, in SubmitApplicationInput) (repository.Application, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Gender = strings.TrimSpace(in.Gender)

	if in.Name == "" {
		return repository.Application{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !validate.Email(in.Email) {
		return repository.Application{}, fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	if in.Gender == "" {
		in.Gender = "Unknown"
	}
	if strings.TrimSpace(in.Resume) == "" {
		return repository.Application{}, fmt.Errorf("%w: resume text is required", ErrInvalidInput)
	}

	job, err := u.jobs.GetByID(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return repository.Application{}, ErrJobNotFound
		}
		return repository.Application{}, ErrInternal
	}

	exists, err := u.apps.ExistsByUserAndJob(ctx, userID, in.JobID)
	if err != nil {
		return repository.Application{}, ErrInternal
	}
	if exists {
		return repository.Application{}, ErrDuplicateApplication
	}

	app := repository.Application{
		ID:          uuid.New(),
		UserID:      userID,
		JobID:       in.JobID,
		Name:        in.Name,
		Email:       in.Email,
		Gender:      in.Gender,
		Resume:      in.Resume,
		Status:      lifecycle.StatusUnderReview,
		Category:    screening.CategoryUncategorized,
		SubmittedOn: truncateToDate(u.now().UTC()),
	}
	if err := u.apps.Create(ctx, app); err != nil {
		// The unique constraint backstops the existence check above under
		// concurrent submits.
		if errors.Is(err, repository.ErrDuplicateApplication) {
			return repository.Application{}, ErrDuplicateApplication
		}
		u.logger.Error("create application failed", zap.Error(err))
		return repository.Application{}, ErrInternal
	}

	u.logger.Debug("application submitted",
		zap.String("application_id", app.ID.String()),
		zap.String("job_title", job.Title),
		zap.String("resume_preview", logger.TruncateForLog(app.Resume, 120)))

	// The application is persisted; a failed acknowledgment mail must not
	// undo the submission.
	ack := notification.NewSubmissionAck(app.Name, app.Email)
	if err := u.notifier.Dispatch(ctx, ack, "notify:"+app.ID.String()+":submitted"); err != nil {
		u.logger.Warn("submission ack dispatch failed",
			zap.String("application_id", app.ID.String()),
			zap.String("job_title", job.Title),
			zap.Error(err))
	}

	return app, nil
}

func (u *Applications) ListMine(ctx context.Context, userID uuid.UUID) ([]repository.ApplicationWithJob, error) {
	apps, err := u.apps.ListByUserID(ctx, userID)
	if err != nil {
		u.logger.Error("list applications failed", zap.Error(err))
		return nil, ErrInternal
	}
	return apps, nil
}

func (u *Applications) Get(ctx context.Context, id uuid.UUID) (repository.Application, error) {
	app, err := u.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return repository.Application{}, ErrApplicationNotFound
		}
		return repository.Application{}, ErrInternal
	}
	return app, nil
}
