package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"batchConverter/api/database"
	"batchConverter/api/models"
)

// errorListLimit caps the error rows returned with a job status.
const errorListLimit = 100

type PostgresRepo struct {
	db *database.DB
}

func NewPostgresRepo(db *database.DB) Repository {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) CreateJob(ctx context.Context, job *models.Job) error {
	query := `
		INSERT INTO jobs (trace_id, files, output_dir, format, preset, skip_all, skip_extensions, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	skip := job.SkipExtensions
	if skip == nil {
		skip = []string{}
	}

	return r.db.Pool.QueryRow(ctx, query,
		job.TraceID,
		job.Files,
		job.OutputDir,
		job.Format,
		job.Preset,
		job.SkipAll,
		skip,
		job.Status,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
}

func (r *PostgresRepo) GetJob(ctx context.Context, id string) (*models.Job, error) {
	query := `
		SELECT id, trace_id, files, output_dir, format, preset, skip_all, skip_extensions,
			status, error_message, last_output_path, total_input_bytes, total_output_bytes,
			success_count, failure_count, created_at, updated_at, completed_at
		FROM jobs
		WHERE id = $1
	`

	var job models.Job
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&job.ID,
		&job.TraceID,
		&job.Files,
		&job.OutputDir,
		&job.Format,
		&job.Preset,
		&job.SkipAll,
		&job.SkipExtensions,
		&job.Status,
		&job.ErrorMessage,
		&job.LastOutputPath,
		&job.TotalInputBytes,
		&job.TotalOutputBytes,
		&job.SuccessCount,
		&job.FailureCount,
		&job.CreatedAt,
		&job.UpdatedAt,
		&job.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	return &job, nil
}

func (r *PostgresRepo) ListJobErrors(ctx context.Context, jobID string) ([]models.JobError, error) {
	query := `
		SELECT path, kind, message, created_at
		FROM job_errors
		WHERE job_id = $1
		ORDER BY id
		LIMIT $2
	`

	rows, err := r.db.Pool.Query(ctx, query, jobID, errorListLimit)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.JobError, error) {
		var e models.JobError
		err := row.Scan(&e.Path, &e.Kind, &e.Message, &e.CreatedAt)
		return e, err
	})
}

func (r *PostgresRepo) UpdateJobStatus(ctx context.Context, id string, status models.JobStatus, errorMessage string) error {
	query := `
		UPDATE jobs
		SET status = $1, error_message = $2, updated_at = NOW()
	`

	if status.Terminal() {
		query += `, completed_at = NOW()`
	}

	query += ` WHERE id = $3`

	result, err := r.db.Pool.Exec(ctx, query, status, errorMessage, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrJobNotFound
	}

	return nil
}
