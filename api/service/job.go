package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"batchConverter/api/cache"
	"batchConverter/api/dto"
	"batchConverter/api/kafka"
	"batchConverter/api/models"
	"batchConverter/api/repository"
	"batchConverter/api/validation"
)

const timeLayout = "2006-01-02T15:04:05Z"

type JobService struct {
	repo     repository.Repository
	cache    *cache.StatusCache
	producer kafka.Producer
	topic    string
	maxFiles int
	logger   *zap.Logger
}

func NewJobService(repo repository.Repository, cache *cache.StatusCache, producer kafka.Producer, topic string, maxFiles int, logger *zap.Logger) *JobService {
	return &JobService{
		repo:     repo,
		cache:    cache,
		producer: producer,
		topic:    topic,
		maxFiles: maxFiles,
		logger:   logger,
	}
}

func (s *JobService) CreateJob(ctx context.Context, traceID string, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	if err := validation.JobRequest(req, s.maxFiles); err != nil {
		return nil, fmt.Errorf("%w: %w", dto.ErrInvalidJob, err)
	}

	job := &models.Job{
		TraceID:        traceID,
		Files:          req.Files,
		OutputDir:      req.OutputDir,
		Format:         req.Format,
		Preset:         req.Preset,
		SkipAll:        req.SkipAll,
		SkipExtensions: req.SkipExtensions,
		Status:         models.StatusPending,
	}

	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	s.setStatus(ctx, job.ID, models.StatusPending)

	msg := &kafka.JobMessage{
		JobID:          job.ID,
		TraceID:        traceID,
		Files:          job.Files,
		OutputDir:      job.OutputDir,
		Format:         job.Format,
		Preset:         job.Preset,
		SkipAll:        job.SkipAll,
		SkipExtensions: job.SkipExtensions,
	}
	if err := s.producer.SendJobMessage(ctx, s.topic, msg); err != nil {
		if uerr := s.repo.UpdateJobStatus(ctx, job.ID, models.StatusFailed, "failed to enqueue job"); uerr != nil {
			s.logger.Error("Failed to mark job failed", zap.String("job_id", job.ID), zap.Error(uerr))
		}
		s.setStatus(ctx, job.ID, models.StatusFailed)
		return nil, fmt.Errorf("publish job: %w", err)
	}

	return s.toResponse(job, nil, nil), nil
}

// GetJobStatus answers from the cache while a job is live and from the
// database once it has finished or the cache entry expired.
func (s *JobService) GetJobStatus(ctx context.Context, jobID string) (*dto.JobResponse, error) {
	entry, err := s.cache.Get(ctx, jobID)
	if err == nil && !entry.Status.Terminal() {
		return &dto.JobResponse{
			ID:       jobID,
			Status:   string(entry.Status),
			Progress: toProgress(entry.Progress),
		}, nil
	}

	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, dto.ErrJobNotFound
		}
		return nil, err
	}

	jobErrors, err := s.repo.ListJobErrors(ctx, jobID)
	if err != nil {
		s.logger.Warn("Failed to list job errors", zap.String("job_id", jobID), zap.Error(err))
	}

	var prog *models.Progress
	if entry != nil {
		prog = entry.Progress
	} else {
		s.setStatus(ctx, job.ID, job.Status)
	}

	return s.toResponse(job, prog, jobErrors), nil
}

func (s *JobService) setStatus(ctx context.Context, jobID string, status models.JobStatus) {
	if err := s.cache.Set(ctx, jobID, status); err != nil {
		s.logger.Warn("Failed to cache job status",
			zap.String("job_id", jobID),
			zap.String("status", string(status)),
			zap.Error(err),
		)
	}
}

func (s *JobService) toResponse(job *models.Job, prog *models.Progress, jobErrors []models.JobError) *dto.JobResponse {
	resp := &dto.JobResponse{
		ID:           job.ID,
		TraceID:      job.TraceID,
		Status:       string(job.Status),
		Format:       job.Format,
		Preset:       job.Preset,
		FileCount:    len(job.Files),
		Progress:     toProgress(prog),
		ErrorMessage: job.ErrorMessage,
		CreatedAt:    job.CreatedAt.Format(timeLayout),
	}

	if job.CompletedAt != nil {
		formatted := job.CompletedAt.Format(timeLayout)
		resp.CompletedAt = &formatted
	}

	if job.Status == models.StatusCompleted || job.Status == models.StatusCancelled {
		resp.Summary = &dto.SummaryResponse{
			LastOutputPath:   job.LastOutputPath,
			TotalInputBytes:  job.TotalInputBytes,
			TotalOutputBytes: job.TotalOutputBytes,
			SuccessCount:     job.SuccessCount,
			FailureCount:     job.FailureCount,
		}
	}

	for _, e := range jobErrors {
		resp.Errors = append(resp.Errors, dto.JobErrorResponse{
			Path:    e.Path,
			Kind:    e.Kind,
			Message: e.Message,
		})
	}

	return resp
}

func toProgress(p *models.Progress) *dto.ProgressResponse {
	if p == nil {
		return nil
	}
	return &dto.ProgressResponse{
		Percent: p.Percent,
		ETA:     p.ETA,
		Speed:   p.Speed,
	}
}
