package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hireflow/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrJobNotFound          = errors.New("job not found")
	ErrJobTitleTaken        = errors.New("job title already exists")
	ErrDeadlineBeforePosted = errors.New("deadline is before the posting date")
)

type JobInput struct {
	Title       string
	Description string
	Deadline    time.Time
}

type JobUsecase interface {
	Create(ctx context.Context, in JobInput) (repository.Job, error)
	Update(ctx context.Context, id uuid.UUID, in JobInput) (repository.Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (repository.Job, error)
	List(ctx context.Context, titleQuery string) ([]repository.Job, error)
}

type Jobs struct {
	jobs   repository.JobRepository
	logger *zap.Logger

	now func() time.Time
}

func NewJobs(jobs repository.JobRepository, logger *zap.Logger) *Jobs {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Jobs{jobs: jobs, logger: logger, now: time.Now}
}

func (u *Jobs) Create(ctx context.Context, in JobInput) (repository.Job, error) {
	if err := validateJobInput(in); err != nil {
		return repository.Job{}, err
	}

	postedOn := truncateToDate(u.now().UTC())
	if truncateToDate(in.Deadline).Before(postedOn) {
		return repository.Job{}, ErrDeadlineBeforePosted
	}

	job := repository.Job{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		PostedOn:    postedOn,
		Deadline:    truncateToDate(in.Deadline),
	}
	if err := u.jobs.Create(ctx, job); err != nil {
		if errors.Is(err, repository.ErrJobTitleTaken) {
			return repository.Job{}, ErrJobTitleTaken
		}
		u.logger.Error("create job failed", zap.Error(err))
		return repository.Job{}, ErrInternal
	}
	return job, nil
}

func (u *Jobs) Update(ctx context.Context, id uuid.UUID, in JobInput) (repository.Job, error) {
	if err := validateJobInput(in); err != nil {
		return repository.Job{}, err
	}

	existing, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return repository.Job{}, ErrJobNotFound
		}
		return repository.Job{}, ErrInternal
	}

	// The posting date is fixed at creation; the deadline must not move
	// before it.
	if truncateToDate(in.Deadline).Before(truncateToDate(existing.PostedOn)) {
		return repository.Job{}, ErrDeadlineBeforePosted
	}

	taken, err := u.jobs.ExistsByTitle(ctx, strings.TrimSpace(in.Title), id)
	if err != nil {
		return repository.Job{}, ErrInternal
	}
	if taken {
		return repository.Job{}, ErrJobTitleTaken
	}

	existing.Title = strings.TrimSpace(in.Title)
	existing.Description = strings.TrimSpace(in.Description)
	existing.Deadline = truncateToDate(in.Deadline)

	if err := u.jobs.Update(ctx, existing); err != nil {
		switch {
		case errors.Is(err, repository.ErrJobTitleTaken):
			return repository.Job{}, ErrJobTitleTaken
		case errors.Is(err, repository.ErrJobNotFound):
			return repository.Job{}, ErrJobNotFound
		default:
			u.logger.Error("update job failed", zap.Error(err))
			return repository.Job{}, ErrInternal
		}
	}
	return existing, nil
}

func (u *Jobs) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.jobs.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrJobNotFound
		}
		u.logger.Error("delete job failed", zap.Error(err))
		return ErrInternal
	}
	return nil
}

func (u *Jobs) Get(ctx context.Context, id uuid.UUID) (repository.Job, error) {
	job, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return repository.Job{}, ErrJobNotFound
		}
		return repository.Job{}, ErrInternal
	}
	return job, nil
}

func (u *Jobs) List(ctx context.Context, titleQuery string) ([]repository.Job, error) {
	jobs, err := u.jobs.List(ctx, strings.TrimSpace(titleQuery))
	if err != nil {
		u.logger.Error("list jobs failed", zap.Error(err))
		return nil, ErrInternal
	}
	return jobs, nil
}

func validateJobInput(in JobInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if in.Deadline.IsZero() {
		return fmt.Errorf("%w: deadline is required", ErrInvalidInput)
	}
	return nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
