package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"hireflow/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrJobNotFound   = errors.New("job not found")
	ErrJobTitleTaken = errors.New("job title already exists")
)

type Job struct {
	ID          uuid.UUID
	Title       string
	Description string
	PostedOn    time.Time
	Deadline    time.Time
	CreatedAt   time.Time
}

type JobRepository interface {
	Create(ctx context.Context, j Job) error
	Update(ctx context.Context, j Job) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByTitle(ctx context.Context, title string, excludeID uuid.UUID) (bool, error)
	List(ctx context.Context, titleQuery string) ([]Job, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, title, description, posted_on, deadline, created_at`

func (r *PostgresJobRepository) Create(ctx context.Context, j Job) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, title, description, posted_on, deadline)
		 VALUES ($1, $2, $3, $4, $5)`,
		j.ID, j.Title, j.Description, j.PostedOn, j.Deadline,
	)
	if isUniqueViolation(err) {
		return ErrJobTitleTaken
	}
	return err
}

func (r *PostgresJobRepository) Update(ctx context.Context, j Job) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE jobs SET title = $1, description = $2, deadline = $3 WHERE id = $4`,
		j.Title, j.Description, j.Deadline, j.ID,
	)
	if isUniqueViolation(err) {
		return ErrJobTitleTaken
	}
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

// Delete removes the job only. Dependent applications are kept; they
// remain readable as orphans.
func (r *PostgresJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)

	var j Job
	if err := row.Scan(&j.ID, &j.Title, &j.Description, &j.PostedOn, &j.Deadline, &j.CreatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Job{}, ErrJobNotFound
		}
		return Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM jobs WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresJobRepository) ExistsByTitle(ctx context.Context, title string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM jobs WHERE title = $1 AND id <> $2)`,
		title, excludeID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresJobRepository) List(ctx context.Context, titleQuery string) ([]Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs`
	args := []any{}
	if titleQuery != "" {
		query += ` WHERE title ILIKE '%' || $1 || '%'`
		args = append(args, titleQuery)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Job, 0)
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Description, &j.PostedOn, &j.Deadline, &j.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
