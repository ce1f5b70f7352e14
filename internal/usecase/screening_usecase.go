package usecase

import (
	"context"
	"errors"
	"fmt"

	"hireflow/internal/domain/lifecycle"
	"hireflow/internal/domain/screening"
	"hireflow/internal/notification"
	"hireflow/internal/report"
	"hireflow/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrAlreadyScreened = errors.New("application already screened")
	ErrNotApprovable   = errors.New("only successfully screened applications can be approved")
)

// ReportGenerator writes a feedback document and returns its path.
// Satisfied by report.PDFGenerator.
type ReportGenerator interface {
	Generate(key string, fb report.Feedback) (string, error)
}

type InviteInput struct {
	// MinScore and MaxScore bound the score band. A nil end falls back
	// to the configured default, so an explicit 0 stays an explicit 0.
	MinScore *float64
	MaxScore *float64
	// ApplicationIDs narrows the invitation to specific rejected
	// applications; empty means everyone in the band.
	ApplicationIDs []uuid.UUID
}

type ScreeningUsecase interface {
	RunPending(ctx context.Context) ([]ItemResult, error)
	Screen(ctx context.Context, id uuid.UUID) (ItemResult, error)
	Rescreen(ctx context.Context, id uuid.UUID) (ItemResult, error)
	Approve(ctx context.Context, id uuid.UUID) (repository.Application, error)
	RunStage2(ctx context.Context) ([]ItemResult, error)
	Invite(ctx context.Context, in InviteInput) ([]ItemResult, error)
}

type Screening struct {
	apps      repository.ApplicationRepository
	jobs      repository.JobRepository
	extractor *screening.Extractor
	reports   ReportGenerator
	notifier  Notifier
	events    EventPublisher
	logger    *zap.Logger

	passThreshold  float64
	inviteMinScore float64
	inviteMaxScore float64
}

type ScreeningOptions struct {
	PassThreshold  float64
	InviteMinScore float64
	InviteMaxScore float64
}

func NewScreening(
	apps repository.ApplicationRepository,
	jobs repository.JobRepository,
	extractor *screening.Extractor,
	reports ReportGenerator,
	notifier Notifier,
	events EventPublisher,
	logger *zap.Logger,
	opts ScreeningOptions,
) *Screening {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Screening{
		apps:           apps,
		jobs:           jobs,
		extractor:      extractor,
		reports:        reports,
		notifier:       notifier,
		events:         events,
		logger:         logger,
		passThreshold:  opts.PassThreshold,
		inviteMinScore: opts.InviteMinScore,
		inviteMaxScore: opts.InviteMaxScore,
	}
}

// RunPending screens every Under Review application. One bad application
// does not abort the batch; its failure is reported per item.
func (u *Screening) RunPending(ctx context.Context) ([]ItemResult, error) {
	pending, err := u.apps.ListByStatus(ctx, lifecycle.StatusUnderReview)
	if err != nil {
		u.logger.Error("list pending applications failed", zap.Error(err))
		return nil, ErrInternal
	}

	results := make([]ItemResult, 0, len(pending))
	for _, app := range pending {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, u.screenOne(ctx, app))
	}
	return results, nil
}

// Screen runs screening for a single application. It refuses
// already-screened applications; Rescreen is the explicit override.
func (u *Screening) Screen(ctx context.Context, id uuid.UUID) (ItemResult, error) {
	app, err := u.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return ItemResult{}, ErrApplicationNotFound
		}
		return ItemResult{}, ErrInternal
	}
	if !lifecycle.CanScreen(app.Status) {
		return ItemResult{}, ErrAlreadyScreened
	}

	res := u.screenOne(ctx, app)
	if res.Error != "" {
		return res, ErrInternal
	}
	return res, nil
}

// Rescreen recomputes a screening from scratch regardless of the current
// status. Status, feedback, score and report are all overwritten.
func (u *Screening) Rescreen(ctx context.Context, id uuid.UUID) (ItemResult, error) {
	app, err := u.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return ItemResult{}, ErrApplicationNotFound
		}
		return ItemResult{}, ErrInternal
	}

	res := u.screenOne(ctx, app)
	if res.Error != "" {
		return res, ErrInternal
	}
	return res, nil
}

// Approve moves a Success application into the second stage and assigns
// its fitness category from the stored match score.
func (u *Screening) Approve(ctx context.Context, id uuid.UUID) (repository.Application, error) {
	app, err := u.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return repository.Application{}, ErrApplicationNotFound
		}
		return repository.Application{}, ErrInternal
	}
	if !lifecycle.CanApprove(app.Status) {
		return repository.Application{}, ErrNotApprovable
	}

	feedback := lifecycle.ApprovalFeedback(app.Name)
	category := screening.Categorize(app.MatchScore)

	if err := u.apps.UpdateApproval(ctx, app.ID, feedback, category); err != nil {
		u.logger.Error("persist approval failed",
			zap.String("application_id", app.ID.String()), zap.Error(err))
		return repository.Application{}, ErrInternal
	}

	app.Status = lifecycle.StatusApproved
	app.Feedback = feedback
	app.Category = category

	u.dispatch(ctx,
		notification.NewStageInvite(app.Name, app.Email, app.MatchScore),
		idemKey(app.ID, string(lifecycle.StatusApproved)))
	u.publish(app.ID, string(lifecycle.StatusApproved), app.MatchScore)

	return app, nil
}

// RunStage2 categorizes every Success application by its stored score
// and notifies the applicant of the second-stage review.
func (u *Screening) RunStage2(ctx context.Context) ([]ItemResult, error) {
	apps, err := u.apps.ListByStatus(ctx, lifecycle.StatusSuccess)
	if err != nil {
		u.logger.Error("list successful applications failed", zap.Error(err))
		return nil, ErrInternal
	}

	results := make([]ItemResult, 0, len(apps))
	for _, app := range apps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res := ItemResult{ApplicationID: app.ID, Name: app.Name, MatchScore: app.MatchScore}

		category := screening.Categorize(app.MatchScore)
		if err := u.apps.UpdateCategory(ctx, app.ID, category); err != nil {
			res.Error = fmt.Sprintf("persist category: %v", err)
			results = append(results, res)
			continue
		}
		res.Status = string(category)

		u.dispatch(ctx,
			notification.NewStageInvite(app.Name, app.Email, app.MatchScore),
			idemKey(app.ID, "stage2"))

		results = append(results, res)
	}
	return results, nil
}

// Invite sends reassessment invitations to rejected applications whose
// score falls inside the band. No status changes; invitations are
// deliberately repeatable, so no idempotency key is used.
func (u *Screening) Invite(ctx context.Context, in InviteInput) ([]ItemResult, error) {
	min, max := u.inviteMinScore, u.inviteMaxScore
	if in.MinScore != nil {
		min = *in.MinScore
	}
	if in.MaxScore != nil {
		max = *in.MaxScore
	}
	if min > max {
		min, max = max, min
	}
	if min < 0 || max > 100 {
		return nil, fmt.Errorf("%w: score band must be within 0-100", ErrInvalidInput)
	}

	candidates, err := u.apps.ListByStatusAndScoreRange(ctx, lifecycle.StatusRejected, min, max)
	if err != nil {
		u.logger.Error("list rejected applications failed", zap.Error(err))
		return nil, ErrInternal
	}

	wanted := map[uuid.UUID]bool{}
	for _, id := range in.ApplicationIDs {
		wanted[id] = true
	}

	results := make([]ItemResult, 0, len(candidates))
	for _, app := range candidates {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if len(wanted) > 0 && !wanted[app.ID] {
			continue
		}

		res := ItemResult{ApplicationID: app.ID, Name: app.Name, MatchScore: app.MatchScore}

		reportPath := app.ReportPath
		if reportPath == "" {
			jobTitle := ""
			if job, err := u.jobs.GetByID(ctx, app.JobID); err == nil {
				jobTitle = job.Title
			}
			reportPath = u.generateReport(ctx, app, jobTitle, nil)
		}

		msg := notification.NewReassessmentInvite(app.Name, app.Email, app.MatchScore, reportPath)
		if err := u.notifier.Dispatch(ctx, msg, ""); err != nil {
			res.Error = fmt.Sprintf("send invitation: %v", err)
		} else {
			res.Status = "invited"
		}
		results = append(results, res)
	}
	return results, nil
}

// screenOne runs extraction, matching and the status transition for one
// application. The transition is persisted before any side effect, so a
// crashed mail send can never leave a notified-but-unscreened row.
func (u *Screening) screenOne(ctx context.Context, app repository.Application) ItemResult {
	res := ItemResult{ApplicationID: app.ID, Name: app.Name}

	job, err := u.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			res.Error = "job posting no longer exists"
		} else {
			res.Error = fmt.Sprintf("load job: %v", err)
		}
		return res
	}

	jobSkills, err := u.extractor.Extract(job.Description)
	if err != nil {
		res.Error = fmt.Sprintf("extract job skills: %v", err)
		return res
	}
	resumeSkills, err := u.extractor.Extract(app.Resume)
	if err != nil {
		res.Error = fmt.Sprintf("extract resume skills: %v", err)
		return res
	}

	match := screening.Match(jobSkills, resumeSkills)
	status, feedback := lifecycle.ScreeningOutcome(match.Score, u.passThreshold, match.MissingSkills)

	if err := u.apps.UpdateScreening(ctx, app.ID, status, feedback, match.Score); err != nil {
		u.logger.Error("persist screening failed",
			zap.String("application_id", app.ID.String()), zap.Error(err))
		res.Error = fmt.Sprintf("persist screening: %v", err)
		return res
	}

	res.Status = string(status)
	res.MatchScore = match.Score

	app.Status = status
	app.Feedback = feedback
	app.MatchScore = match.Score

	reportPath := u.generateReport(ctx, app, job.Title, match.MissingSkills)

	u.dispatch(ctx,
		notification.NewScreeningResult(app.Name, app.Email, job.Title, feedback, reportPath),
		idemKey(app.ID, string(status)))
	u.publish(app.ID, string(status), match.Score)

	u.logger.Info("application screened",
		zap.String("application_id", app.ID.String()),
		zap.String("status", string(status)),
		zap.Float64("match_score", match.Score))

	return res
}

// generateReport writes the feedback PDF and records its path. Failures
// are logged only; the screening result already stands.
func (u *Screening) generateReport(ctx context.Context, app repository.Application, jobTitle string, missingSkills []string) string {
	if u.reports == nil {
		return ""
	}

	path, err := u.reports.Generate(app.ID.String(), report.Feedback{
		ApplicantName: app.Name,
		Email:         app.Email,
		JobTitle:      jobTitle,
		MatchScore:    app.MatchScore,
		MissingSkills: missingSkills,
		FeedbackText:  app.Feedback,
	})
	if err != nil {
		u.logger.Warn("feedback report generation failed",
			zap.String("application_id", app.ID.String()), zap.Error(err))
		return ""
	}

	if err := u.apps.UpdateReportPath(ctx, app.ID, path); err != nil {
		u.logger.Warn("persist report path failed",
			zap.String("application_id", app.ID.String()), zap.Error(err))
	}
	return path
}

func (u *Screening) dispatch(ctx context.Context, msg notification.Message, key string) {
	if u.notifier == nil {
		return
	}
	if err := u.notifier.Dispatch(ctx, msg, key); err != nil {
		u.logger.Warn("notification dispatch failed",
			zap.String("to", msg.To), zap.Error(err))
	}
}

func (u *Screening) publish(id uuid.UUID, status string, score float64) {
	if u.events == nil {
		return
	}
	u.events.ScreeningCompleted(id, status, score)
}

func idemKey(id uuid.UUID, suffix string) string {
	return "notify:" + id.String() + ":" + suffix
}
