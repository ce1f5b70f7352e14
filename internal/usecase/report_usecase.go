package usecase

import (
	"context"

	"hireflow/internal/domain/fairness"
	"hireflow/internal/domain/lifecycle"
	"hireflow/internal/report"
	"hireflow/internal/repository"

	"go.uber.org/zap"
)

type Dashboard struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"by_status"`
	ByGender   map[string]int `json:"by_gender"`
	Pending    int            `json:"pending"`
	Successful int            `json:"successful"`
	Rejected   int            `json:"rejected"`
	Approved   int            `json:"approved"`
}

type ReportUsecase interface {
	ListApplications(ctx context.Context) ([]repository.ApplicationWithJob, error)
	ExportApplicationsXLSX(ctx context.Context) ([]byte, error)
	Dashboard(ctx context.Context) (Dashboard, error)
	BiasReport(ctx context.Context) (fairness.Report, error)
}

type Reports struct {
	apps   repository.ApplicationRepository
	logger *zap.Logger

	passThreshold float64
}

func NewReports(apps repository.ApplicationRepository, passThreshold float64, logger *zap.Logger) *Reports {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reports{apps: apps, logger: logger, passThreshold: passThreshold}
}

func (u *Reports) ListApplications(ctx context.Context) ([]repository.ApplicationWithJob, error) {
	apps, err := u.apps.ListAll(ctx)
	if err != nil {
		u.logger.Error("list all applications failed", zap.Error(err))
		return nil, ErrInternal
	}
	return apps, nil
}

func (u *Reports) ExportApplicationsXLSX(ctx context.Context) ([]byte, error) {
	apps, err := u.apps.ListAll(ctx)
	if err != nil {
		u.logger.Error("list all applications failed", zap.Error(err))
		return nil, ErrInternal
	}

	rows := make([]report.ApplicationRow, 0, len(apps))
	for _, a := range apps {
		rows = append(rows, report.ApplicationRow{
			Name:        a.Name,
			Email:       a.Email,
			Gender:      a.Gender,
			JobTitle:    a.JobTitle,
			Status:      string(a.Status),
			Feedback:    a.Feedback,
			MatchScore:  a.MatchScore,
			Category:    string(a.Category),
			SubmittedOn: a.SubmittedOn,
		})
	}

	b, err := report.WriteApplicationsXLSX(rows)
	if err != nil {
		u.logger.Error("write applications workbook failed", zap.Error(err))
		return nil, ErrInternal
	}
	return b, nil
}

func (u *Reports) Dashboard(ctx context.Context) (Dashboard, error) {
	byStatus, err := u.apps.CountByStatus(ctx)
	if err != nil {
		u.logger.Error("count by status failed", zap.Error(err))
		return Dashboard{}, ErrInternal
	}
	byGender, err := u.apps.CountByGender(ctx)
	if err != nil {
		u.logger.Error("count by gender failed", zap.Error(err))
		return Dashboard{}, ErrInternal
	}

	total := 0
	for _, n := range byStatus {
		total += n
	}

	return Dashboard{
		Total:      total,
		ByStatus:   byStatus,
		ByGender:   byGender,
		Pending:    byStatus[string(lifecycle.StatusUnderReview)],
		Successful: byStatus[string(lifecycle.StatusSuccess)],
		Rejected:   byStatus[string(lifecycle.StatusRejected)],
		Approved:   byStatus[string(lifecycle.StatusApproved)],
	}, nil
}

// BiasReport computes demographic parity across genders, counting an
// application as selected when its match score clears the pass
// threshold. Unscreened applications count as not selected, matching
// their zero stored score.
func (u *Reports) BiasReport(ctx context.Context) (fairness.Report, error) {
	apps, err := u.apps.ListAll(ctx)
	if err != nil {
		u.logger.Error("list all applications failed", zap.Error(err))
		return fairness.Report{}, ErrInternal
	}

	records := make([]fairness.Record, 0, len(apps))
	for _, a := range apps {
		records = append(records, fairness.Record{
			Group:    a.Gender,
			Selected: a.MatchScore >= u.passThreshold,
		})
	}
	return fairness.Analyze(records), nil
}
