package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"hireflow/internal/database"
	"hireflow/internal/domain/lifecycle"
	"hireflow/internal/domain/screening"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("application already submitted for this job")
)

type Application struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	JobID       uuid.UUID
	Name        string
	Email       string
	Gender      string
	Resume      string
	Status      lifecycle.Status
	Feedback    string
	MatchScore  float64
	Category    screening.Category
	ReportPath  string
	SubmittedOn time.Time
}

// ApplicationWithJob joins the posting the applicant applied for; the
// job fields are empty when the posting has since been deleted.
type ApplicationWithJob struct {
	Application
	JobTitle    string
	JobDeadline time.Time
}

type ApplicationRepository interface {
	Create(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	ExistsByUserAndJob(ctx context.Context, userID, jobID uuid.UUID) (bool, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]ApplicationWithJob, error)
	ListByStatus(ctx context.Context, status lifecycle.Status) ([]Application, error)
	ListByStatusAndScoreRange(ctx context.Context, status lifecycle.Status, min, max float64) ([]Application, error)
	ListAll(ctx context.Context) ([]ApplicationWithJob, error)
	UpdateScreening(ctx context.Context, id uuid.UUID, status lifecycle.Status, feedback string, score float64) error
	UpdateApproval(ctx context.Context, id uuid.UUID, feedback string, category screening.Category) error
	UpdateCategory(ctx context.Context, id uuid.UUID, category screening.Category) error
	UpdateReportPath(ctx context.Context, id uuid.UUID, path string) error
	CountByStatus(ctx context.Context) (map[string]int, error)
	CountByGender(ctx context.Context) (map[string]int, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `id, user_id, job_id, name, email, gender, resume,
	status, feedback, match_score, category, report_path, submitted_on`

func (r *PostgresApplicationRepository) Create(ctx context.Context, a Application) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO applications
		 (id, user_id, job_id, name, email, gender, resume, status, category, submitted_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.UserID, a.JobID, a.Name, a.Email, a.Gender, a.Resume,
		a.Status, a.Category, a.SubmittedOn,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateApplication
	}
	return err
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (Application, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)

	a, err := scanApplication(row)
	if err != nil {
		return Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) ExistsByUserAndJob(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE user_id = $1 AND job_id = $2)`,
		userID, jobID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresApplicationRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]ApplicationWithJob, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.user_id, a.job_id, a.name, a.email, a.gender, a.resume,
		        a.status, a.feedback, a.match_score, a.category, a.report_path, a.submitted_on,
		        COALESCE(j.title, ''), COALESCE(j.deadline, '0001-01-01'::date)
		 FROM applications a
		 LEFT JOIN jobs j ON j.id = a.job_id
		 WHERE a.user_id = $1
		 ORDER BY a.submitted_on DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectWithJob(rows)
}

func (r *PostgresApplicationRepository) ListByStatus(ctx context.Context, status lifecycle.Status) ([]Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE status = $1 ORDER BY submitted_on ASC`,
		status,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collect(rows)
}

func (r *PostgresApplicationRepository) ListByStatusAndScoreRange(ctx context.Context, status lifecycle.Status, min, max float64) ([]Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+`
		 FROM applications
		 WHERE status = $1 AND match_score BETWEEN $2 AND $3
		 ORDER BY match_score DESC`,
		status, min, max,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collect(rows)
}

func (r *PostgresApplicationRepository) ListAll(ctx context.Context) ([]ApplicationWithJob, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.user_id, a.job_id, a.name, a.email, a.gender, a.resume,
		        a.status, a.feedback, a.match_score, a.category, a.report_path, a.submitted_on,
		        COALESCE(j.title, ''), COALESCE(j.deadline, '0001-01-01'::date)
		 FROM applications a
		 LEFT JOIN jobs j ON j.id = a.job_id
		 ORDER BY a.submitted_on DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectWithJob(rows)
}

func (r *PostgresApplicationRepository) UpdateScreening(ctx context.Context, id uuid.UUID, status lifecycle.Status, feedback string, score float64) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE applications SET status = $1, feedback = $2, match_score = $3 WHERE id = $4`,
		status, feedback, score, id,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *PostgresApplicationRepository) UpdateApproval(ctx context.Context, id uuid.UUID, feedback string, category screening.Category) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE applications SET status = $1, feedback = $2, category = $3 WHERE id = $4`,
		lifecycle.StatusApproved, feedback, category, id,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *PostgresApplicationRepository) UpdateCategory(ctx context.Context, id uuid.UUID, category screening.Category) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE applications SET category = $1 WHERE id = $2`, category, id)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *PostgresApplicationRepository) UpdateReportPath(ctx context.Context, id uuid.UUID, path string) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE applications SET report_path = $1 WHERE id = $2`, path, id)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *PostgresApplicationRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	return r.countBy(ctx, `SELECT status, COUNT(*) FROM applications GROUP BY status`)
}

func (r *PostgresApplicationRepository) CountByGender(ctx context.Context) (map[string]int, error) {
	return r.countBy(ctx, `SELECT gender, COUNT(*) FROM applications GROUP BY gender`)
}

func (r *PostgresApplicationRepository) countBy(ctx context.Context, query string) (map[string]int, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		out[key] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanApplication(row database.Row) (Application, error) {
	var a Application
	err := row.Scan(
		&a.ID, &a.UserID, &a.JobID, &a.Name, &a.Email, &a.Gender, &a.Resume,
		&a.Status, &a.Feedback, &a.MatchScore, &a.Category, &a.ReportPath, &a.SubmittedOn,
	)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Application{}, ErrApplicationNotFound
		}
		return Application{}, err
	}
	return a, nil
}

func collect(rows database.Rows) ([]Application, error) {
	out := make([]Application, 0)
	for rows.Next() {
		var a Application
		err := rows.Scan(
			&a.ID, &a.UserID, &a.JobID, &a.Name, &a.Email, &a.Gender, &a.Resume,
			&a.Status, &a.Feedback, &a.MatchScore, &a.Category, &a.ReportPath, &a.SubmittedOn,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func collectWithJob(rows database.Rows) ([]ApplicationWithJob, error) {
	out := make([]ApplicationWithJob, 0)
	for rows.Next() {
		var a ApplicationWithJob
		err := rows.Scan(
			&a.ID, &a.UserID, &a.JobID, &a.Name, &a.Email, &a.Gender, &a.Resume,
			&a.Status, &a.Feedback, &a.MatchScore, &a.Category, &a.ReportPath, &a.SubmittedOn,
			&a.JobTitle, &a.JobDeadline,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
