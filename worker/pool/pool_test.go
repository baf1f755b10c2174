package pool

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"batchConverter/worker/kafka"
)

func TestWorkerPool_BoundsConcurrency(t *testing.T) {
	p := NewWorkerPool(2, zaptest.NewLogger(t))

	var running, peak, done atomic.Int32
	handler := func(ctx context.Context, msg *kafka.JobMessage) error {
		n := running.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		running.Add(-1)
		done.Add(1)
		return nil
	}

	for i := 0; i < 6; i++ {
		p.Submit(context.Background(), &kafka.JobMessage{JobID: fmt.Sprintf("job-%d", i)}, handler)
	}
	p.Wait()

	if done.Load() != 6 {
		t.Errorf("Expected 6 jobs handled, got %d", done.Load())
	}
	if peak.Load() > 2 {
		t.Errorf("Expected at most 2 concurrent jobs, got %d", peak.Load())
	}
}

func TestWorkerPool_DropsWhenCancelled(t *testing.T) {
	p := NewWorkerPool(1, zaptest.NewLogger(t))
	release := make(chan struct{})
	var started sync.WaitGroup
	started.Add(1)

	p.Submit(context.Background(), &kafka.JobMessage{JobID: "busy"}, func(ctx context.Context, msg *kafka.JobMessage) error {
		started.Done()
		<-release
		return nil
	})
	started.Wait()

	if n := p.InFlight(); n != 1 {
		t.Errorf("Expected 1 job in flight, got %d", n)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var ran atomic.Bool
	p.Submit(ctx, &kafka.JobMessage{JobID: "queued"}, func(ctx context.Context, msg *kafka.JobMessage) error {
		ran.Store(true)
		return nil
	})
	time.Sleep(50 * time.Millisecond)
	close(release)
	p.Wait()

	if ran.Load() {
		t.Error("Expected queued job to be dropped after cancellation")
	}
	if n := p.InFlight(); n != 0 {
		t.Errorf("Expected no jobs in flight, got %d", n)
	}
}

func TestNewWorkerPool_MinimumOne(t *testing.T) {
	if p := NewWorkerPool(0, zaptest.NewLogger(t)); cap(p.sem) != 1 {
		t.Errorf("Expected capacity 1, got %d", cap(p.sem))
	}
}

func TestWorkerPool_HandlerErrorDoesNotBlock(t *testing.T) {
	p := NewWorkerPool(1, zaptest.NewLogger(t))
	var calls atomic.Int32
	failing := func(ctx context.Context, msg *kafka.JobMessage) error {
		calls.Add(1)
		return fmt.Errorf("job %s failed", msg.JobID)
	}

	p.Submit(context.Background(), &kafka.JobMessage{JobID: "a"}, failing)
	p.Submit(context.Background(), &kafka.JobMessage{JobID: "b"}, failing)
	p.Wait()

	if calls.Load() != 2 {
		t.Errorf("Expected both jobs handled, got %d", calls.Load())
	}
}
