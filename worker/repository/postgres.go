package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"batchConverter/worker/runner"
)

var ErrJobNotFound = errors.New("job not found")

type Repository interface {
	UpdateJobStatus(ctx context.Context, jobID string, status string, errMsg string) error
	SaveSummary(ctx context.Context, jobID string, summary runner.Summary) error
	RecordError(ctx context.Context, jobID string, ev runner.ErrorEvent) error
}

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) UpdateJobStatus(ctx context.Context, jobID string, status string, errMsg string) error {
	query := `UPDATE jobs SET status = $1, error_message = $2, updated_at = NOW()`
	if isTerminal(status) {
		query += `, completed_at = NOW()`
	}
	query += ` WHERE id = $3`

	result, err := r.db.Exec(ctx, query, status, errMsg, jobID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresRepo) SaveSummary(ctx context.Context, jobID string, summary runner.Summary) error {
	query := `
		UPDATE jobs
		SET status = $1,
			last_output_path = $2,
			total_input_bytes = $3,
			total_output_bytes = $4,
			success_count = $5,
			failure_count = $6,
			updated_at = NOW(),
			completed_at = NOW()
		WHERE id = $7
	`

	result, err := r.db.Exec(ctx, query,
		string(summary.State),
		summary.LastOutputPath,
		summary.TotalInputBytes,
		summary.TotalOutputBytes,
		summary.SuccessCount,
		summary.FailureCount,
		jobID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresRepo) RecordError(ctx context.Context, jobID string, ev runner.ErrorEvent) error {
	query := `
		INSERT INTO job_errors (job_id, path, kind, message)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, jobID, ev.Path, string(ev.Kind), ev.Message)
	return err
}

func isTerminal(status string) bool {
	switch runner.State(status) {
	case runner.StateCompleted, runner.StateCancelled, runner.StateFailed:
		return true
	}
	return false
}
