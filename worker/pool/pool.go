package pool

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"batchConverter/worker/kafka"
)

// WorkerPool bounds how many jobs run at once. Files inside one job are
// still converted one after another by that job's runner.
type WorkerPool struct {
	sem      chan struct{}
	wg       sync.WaitGroup
	inFlight atomic.Int32
	logger   *zap.Logger
}

func NewWorkerPool(maxWorkers int, logger *zap.Logger) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &WorkerPool{
		sem:    make(chan struct{}, maxWorkers),
		logger: logger,
	}
}

// Submit returns immediately. If ctx is done before a slot frees up the job
// is dropped and logged; its message offset has already been committed.
func (p *WorkerPool) Submit(ctx context.Context, msg *kafka.JobMessage, handler kafka.MessageHandler) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		select {
		case p.sem <- struct{}{}:
			p.inFlight.Add(1)
			defer func() {
				p.inFlight.Add(-1)
				<-p.sem
			}()
			if err := handler(ctx, msg); err != nil {
				p.logger.Error("Job failed",
					zap.String("job_id", msg.JobID),
					zap.String("trace_id", msg.TraceID),
					zap.Error(err),
				)
			}
		case <-ctx.Done():
			p.logger.Warn("Job dropped before start",
				zap.String("job_id", msg.JobID),
				zap.String("trace_id", msg.TraceID),
			)
		}
	}()
}

// InFlight is the number of jobs currently holding a slot.
func (p *WorkerPool) InFlight() int {
	return int(p.inFlight.Load())
}

func (p *WorkerPool) Wait() {
	p.wg.Wait()
}
