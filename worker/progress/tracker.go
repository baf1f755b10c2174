// Package progress turns processed input bytes into percent, ETA and
// throughput text.
package progress

import (
	"fmt"
	"time"
)

const (
	CalculatingETA   = "ETA: Calculating..."
	CalculatingSpeed = "Speed: Calculating..."
	SkippingETA      = "Skipping..."
	megabyte         = 1024 * 1024
)

// Snapshot is what a progress event carries.
type Snapshot struct {
	Percent   int    `json:"percent"`
	ETA       string `json:"eta"`
	Speed     string `json:"speed"`
	Processed int64  `json:"processed_bytes"`
	Total     int64  `json:"total_bytes"`
}

// Tracker is owned by a single runner goroutine and is not safe for
// concurrent use.
type Tracker struct {
	total     int64
	files     int
	processed int64
	start     time.Time
	now       func() time.Time
}

func NewTracker(totalBytes int64, fileCount int) *Tracker {
	return &Tracker{total: totalBytes, files: fileCount, now: time.Now}
}

// WithClock replaces the time source; tests use it to pin elapsed time.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

func (t *Tracker) Start() {
	t.start = t.now()
}

// Advance adds n bytes. Negative values are ignored so the accumulator never
// decreases.
func (t *Tracker) Advance(n int64) {
	if n > 0 {
		t.processed += n
	}
}

func (t *Tracker) Processed() int64 {
	return t.processed
}

func (t *Tracker) Total() int64 {
	return t.total
}

// Percent is byte-weighted; with no known bytes it falls back to the share of
// files visited, index being the zero-based position of the current file.
func (t *Tracker) Percent(index int) int {
	var p int
	switch {
	case t.total > 0:
		p = int(t.processed * 100 / t.total)
	case t.files > 0:
		p = (index + 1) * 100 / t.files
	}
	return min(max(p, 0), 100)
}

// Skipped is the snapshot emitted for files passed over by the error policy.
func (t *Tracker) Skipped(index int) Snapshot {
	return Snapshot{
		Percent:   t.Percent(index),
		ETA:       SkippingETA,
		Processed: t.processed,
		Total:     t.total,
	}
}

// Converted is the snapshot emitted after a file was processed, with ETA and
// average throughput since Start.
func (t *Tracker) Converted(index int) Snapshot {
	s := Snapshot{
		Percent:   t.Percent(index),
		ETA:       CalculatingETA,
		Speed:     CalculatingSpeed,
		Processed: t.processed,
		Total:     t.total,
	}

	elapsed := t.now().Sub(t.start).Seconds()
	if elapsed <= 0 || t.processed <= 0 {
		return s
	}

	s.Speed = fmt.Sprintf("Speed: %.2f MB/s", float64(t.processed)/megabyte/elapsed)
	if s.Percent > 0 {
		estimate := elapsed * (100 / float64(s.Percent))
		s.ETA = "ETA: " + FormatRemaining(estimate-elapsed)
	}
	return s
}

// FormatRemaining renders whole seconds as "42s" or "3m 7s".
func FormatRemaining(seconds float64) string {
	r := int(max(seconds, 0))
	if r < 60 {
		return fmt.Sprintf("%ds", r)
	}
	return fmt.Sprintf("%dm %ds", r/60, r%60)
}
