package repository

import (
	"context"
	"errors"

	"batchConverter/api/models"
)

var ErrJobNotFound = errors.New("job not found")

type Repository interface {
	CreateJob(ctx context.Context, job *models.Job) error
	GetJob(ctx context.Context, id string) (*models.Job, error)
	ListJobErrors(ctx context.Context, jobID string) ([]models.JobError, error)
	UpdateJobStatus(ctx context.Context, id string, status models.JobStatus, errorMessage string) error
}
