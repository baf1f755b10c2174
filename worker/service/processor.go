package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"batchConverter/worker/kafka"
	"batchConverter/worker/media"
	"batchConverter/worker/policy"
	"batchConverter/worker/progress"
	"batchConverter/worker/repository"
	"batchConverter/worker/runner"
)

type StatusCache interface {
	SetStatus(ctx context.Context, jobID string, status string) error
	SetProgress(ctx context.Context, jobID string, snap progress.Snapshot) error
}

type JobRunner interface {
	Start(ctx context.Context, job runner.Job, p *policy.ErrorPolicy) <-chan runner.Event
}

type Processor struct {
	repo     repository.Repository
	cache    StatusCache
	runner   JobRunner
	reaction policy.Reaction
	logger   *zap.Logger
}

func NewProcessor(repo repository.Repository, cache StatusCache, r JobRunner, reaction policy.Reaction, logger *zap.Logger) *Processor {
	return &Processor{
		repo:     repo,
		cache:    cache,
		runner:   r,
		reaction: reaction,
		logger:   logger,
	}
}

// Process runs one job to its end. Error events are answered with the
// configured reaction while the job is still running.
func (p *Processor) Process(ctx context.Context, msg *kafka.JobMessage) error {
	log := p.logger.With(zap.String("job_id", msg.JobID), zap.String("trace_id", msg.TraceID))

	job, err := toJob(msg)
	if err != nil {
		p.fail(ctx, log, msg.JobID, err.Error())
		return err
	}

	if err := p.repo.UpdateJobStatus(ctx, msg.JobID, string(runner.StateRunning), ""); err != nil {
		return err
	}
	p.setStatus(ctx, log, msg.JobID, runner.StateRunning)

	errPolicy := policy.New()
	errPolicy.SetSkipAll(msg.SkipAll)
	for _, ext := range msg.SkipExtensions {
		errPolicy.SkipExtension(ext)
	}

	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	// Results are still stored when the job is cancelled by a shutdown.
	ctx = context.WithoutCancel(ctx)

	var (
		completed bool
		lastErr   string
	)
	for ev := range p.runner.Start(jobCtx, job, errPolicy) {
		switch e := ev.(type) {
		case runner.ProgressEvent:
			if err := p.cache.SetProgress(ctx, msg.JobID, e.Snapshot); err != nil {
				log.Warn("Failed to cache progress", zap.Error(err))
			}
		case runner.ErrorEvent:
			lastErr = e.Message
			if err := p.repo.RecordError(ctx, msg.JobID, e); err != nil {
				log.Warn("Failed to record job error", zap.Error(err))
			}
			p.reaction.Apply(errPolicy, e.Extension(), cancel)
		case runner.CompletionEvent:
			completed = true
			if err := p.repo.SaveSummary(ctx, msg.JobID, e.Summary); err != nil {
				return fmt.Errorf("save summary: %w", err)
			}
			p.setStatus(ctx, log, msg.JobID, e.State)
			log.Info("Job processed",
				zap.String("state", string(e.State)),
				zap.Int("succeeded", e.SuccessCount),
				zap.Int("failed", e.FailureCount),
			)
		}
	}

	if !completed {
		p.fail(ctx, log, msg.JobID, lastErr)
	}
	return nil
}

func (p *Processor) fail(ctx context.Context, log *zap.Logger, jobID, reason string) {
	if err := p.repo.UpdateJobStatus(ctx, jobID, string(runner.StateFailed), reason); err != nil {
		log.Error("Failed to mark job failed", zap.Error(err))
	}
	p.setStatus(ctx, log, jobID, runner.StateFailed)
}

func (p *Processor) setStatus(ctx context.Context, log *zap.Logger, jobID string, state runner.State) {
	if err := p.cache.SetStatus(ctx, jobID, string(state)); err != nil {
		log.Warn("Failed to cache status", zap.String("status", string(state)), zap.Error(err))
	}
}

func toJob(msg *kafka.JobMessage) (runner.Job, error) {
	format, err := media.ParseFormat(msg.Format)
	if err != nil {
		return runner.Job{}, err
	}
	preset, err := media.ParsePreset(msg.Preset)
	if err != nil {
		return runner.Job{}, err
	}
	return runner.Job{
		ID:        msg.JobID,
		Files:     msg.Files,
		OutputDir: msg.OutputDir,
		Format:    format,
		Preset:    preset,
	}, nil
}
