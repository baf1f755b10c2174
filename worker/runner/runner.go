// Package runner drives a conversion job file by file on a background
// goroutine and reports through an event channel.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"

	"go.uber.org/zap"

	"batchConverter/worker/converter"
	"batchConverter/worker/decoder"
	"batchConverter/worker/media"
	"batchConverter/worker/policy"
	"batchConverter/worker/progress"
)

// Converter processes a single file.
type Converter interface {
	Convert(in converter.Input, target media.Format, outputPath string) error
}

type Runner struct {
	logger    *zap.Logger
	converter Converter
	largeFile int64
	reclaim   func()
}

func NewRunner(logger *zap.Logger, conv Converter, largeFileThreshold int64) *Runner {
	return &Runner{
		logger:    logger,
		converter: conv,
		largeFile: largeFileThreshold,
		reclaim:   debug.FreeOSMemory,
	}
}

// Start runs job on a new goroutine. Events arrive in emission order and the
// channel is closed after the last one. The channel is buffered for the whole
// job, so a slow reader never stalls conversion.
//
// Cancelling ctx is cooperative: it is checked once per file, and a file that
// is already being converted runs to completion.
func (r *Runner) Start(ctx context.Context, job Job, p *policy.ErrorPolicy) <-chan Event {
	events := make(chan Event, eventCapacity(job))
	go func() {
		defer close(events)
		r.run(ctx, job, p, func(ev Event) { events <- ev })
	}()
	return events
}

func (r *Runner) run(ctx context.Context, job Job, p *policy.ErrorPolicy, emit func(Event)) State {
	log := r.logger.With(zap.String("job_id", job.ID))

	if err := os.MkdirAll(job.OutputDir, 0755); err != nil {
		log.Error("Failed to create output directory",
			zap.String("output_dir", job.OutputDir),
			zap.Error(err),
		)
		emit(ErrorEvent{
			JobID:   job.ID,
			Path:    job.OutputDir,
			Message: fmt.Sprintf("Failed to create output directory: %v", err),
			Kind:    KindDirectory,
		})
		return StateFailed
	}

	files := sortBySize(job.Files)
	tracker := progress.NewTracker(totalSize(files), len(files))
	tracker.Start()

	jr := &jobRun{
		runner:  r,
		log:     log,
		job:     job,
		policy:  p,
		tracker: tracker,
		emit:    emit,
		summary: Summary{State: StateRunning, TotalInputBytes: tracker.Total()},
	}
	log.Info("Job started",
		zap.Int("files", len(files)),
		zap.Int64("total_bytes", jr.summary.TotalInputBytes),
		zap.String("format", job.Format.String()),
		zap.String("preset", string(job.Preset)),
	)

	for i, path := range files {
		if ctx.Err() != nil {
			jr.summary.State = StateCancelled
			break
		}
		rec := jr.visit(i, path)
		if rec.state != FilePending {
			log.Debug("File done",
				zap.String("path", rec.path),
				zap.String("state", string(rec.state)),
				zap.Int64("size", rec.size),
			)
		}
	}

	summary := jr.summary
	if summary.State == StateRunning {
		summary.State = StateCompleted
	}
	log.Info("Job finished",
		zap.String("state", string(summary.State)),
		zap.Int("succeeded", summary.SuccessCount),
		zap.Int("failed", summary.FailureCount),
		zap.Int64("input_bytes", summary.TotalInputBytes),
		zap.Int64("output_bytes", summary.TotalOutputBytes),
		zap.Float64("ratio", ratio(summary.TotalOutputBytes, summary.TotalInputBytes)),
	)
	emit(CompletionEvent{JobID: job.ID, Summary: summary})
	return summary.State
}

// jobRun is the loop state of one job.
type jobRun struct {
	runner  *Runner
	log     *zap.Logger
	job     Job
	policy  *policy.ErrorPolicy
	tracker *progress.Tracker
	emit    func(Event)
	summary Summary
}

func (jr *jobRun) emitProgress(snap progress.Snapshot) {
	jr.emit(ProgressEvent{JobID: jr.job.ID, Snapshot: snap})
}

// visit handles one input path. The returned record stays Pending when the
// file was not recognized and no counter changed.
func (jr *jobRun) visit(i int, path string) fileRecord {
	rec := fileRecord{path: path, ext: media.Extension(path), state: FilePending}

	fi, err := os.Stat(path)
	if err != nil {
		rec.state = FileFailed
		jr.summary.FailureCount++
		if jr.policy.SkipAll() {
			jr.emitProgress(jr.tracker.Skipped(i))
		} else {
			jr.emit(ErrorEvent{JobID: jr.job.ID, Path: path, Message: "File not found: " + path, Kind: KindFileNotFound})
		}
		return rec
	}

	kind := media.Classify(path)
	if kind == media.KindUnrecognized {
		return rec
	}
	rec.size = fi.Size()

	if jr.policy.SkipAll() || jr.policy.Skips(rec.ext) {
		rec.state = FileSkipped
		jr.summary.FailureCount++
		jr.tracker.Advance(rec.size)
		jr.emitProgress(jr.tracker.Skipped(i))
		return rec
	}

	out := media.OutputPath(jr.job.OutputDir, path, jr.job.Format)
	err = jr.runner.convert(converter.Input{
		Path:   path,
		Kind:   kind,
		Size:   rec.size,
		Preset: jr.job.Preset,
	}, jr.job.Format, out)
	jr.tracker.Advance(rec.size)

	if err != nil {
		rec.state = FileFailed
		jr.summary.FailureCount++
		if jr.policy.SkipAll() {
			jr.emitProgress(jr.tracker.Skipped(i))
			return rec
		}
		ev := classify(err, rec)
		ev.JobID = jr.job.ID
		jr.log.Warn("File failed",
			zap.String("path", path),
			zap.String("kind", string(ev.Kind)),
			zap.Error(err),
		)
		jr.emit(ev)
		jr.emitProgress(jr.tracker.Converted(i))
		return rec
	}

	rec.state = FileSucceeded
	jr.summary.SuccessCount++
	jr.summary.LastOutputPath = out
	if ofi, err := os.Stat(out); err == nil {
		jr.summary.TotalOutputBytes += ofi.Size()
	}
	jr.emitProgress(jr.tracker.Converted(i))
	return rec
}

// convert runs one file and hands memory back to the OS after large inputs.
func (r *Runner) convert(in converter.Input, target media.Format, out string) error {
	err := r.converter.Convert(in, target, out)
	if r.largeFile > 0 && in.Size > r.largeFile {
		r.reclaim()
	}
	return err
}

func classify(err error, rec fileRecord) ErrorEvent {
	name := filepath.Base(rec.path)
	switch {
	case errors.Is(err, decoder.ErrOutOfMemory):
		return ErrorEvent{
			Path:    rec.path,
			Message: fmt.Sprintf("Not enough memory to process %s: %v", name, err),
			Kind:    KindOutOfMemory,
		}
	case errors.Is(err, decoder.ErrMissingDependency):
		return ErrorEvent{
			Path:    rec.path,
			Message: fmt.Sprintf("Missing library: %v", err),
			Kind:    KindMissingDependency,
		}
	}
	return ErrorEvent{
		Path:    rec.path,
		Message: fmt.Sprintf("Error processing %s: %v", name, err),
		Kind:    ErrorKind(rec.ext),
	}
}

// sortBySize orders a copy of files by ascending size. If any file cannot be
// stat'ed the original order is kept.
func sortBySize(files []string) []string {
	sizes := make(map[string]int64, len(files))
	for _, f := range files {
		fi, err := os.Stat(f)
		if err != nil {
			return slices.Clone(files)
		}
		sizes[f] = fi.Size()
	}
	sorted := slices.Clone(files)
	slices.SortStableFunc(sorted, func(a, b string) int {
		switch {
		case sizes[a] < sizes[b]:
			return -1
		case sizes[a] > sizes[b]:
			return 1
		}
		return 0
	})
	return sorted
}

func totalSize(files []string) int64 {
	var total int64
	for _, f := range files {
		if fi, err := os.Stat(f); err == nil {
			total += fi.Size()
		}
	}
	return total
}

func ratio(out, in int64) float64 {
	if in == 0 {
		return 0
	}
	return float64(out) / float64(in)
}
