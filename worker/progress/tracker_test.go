package progress

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func TestFormatRemaining(t *testing.T) {
	tests := map[float64]string{
		0:      "0s",
		12.9:   "12s",
		59.99:  "59s",
		60:     "1m 0s",
		187:    "3m 7s",
		3725.5: "62m 5s",
		-4:     "0s",
	}
	for in, want := range tests {
		if got := FormatRemaining(in); got != want {
			t.Errorf("FormatRemaining(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestTracker_PercentByBytes(t *testing.T) {
	tr := NewTracker(400, 4)
	tr.Advance(100)
	if p := tr.Percent(0); p != 25 {
		t.Errorf("Expected 25, got %d", p)
	}
	tr.Advance(299)
	if p := tr.Percent(1); p != 99 {
		t.Errorf("Expected 99 (floor), got %d", p)
	}
	tr.Advance(1)
	if p := tr.Percent(2); p != 100 {
		t.Errorf("Expected 100, got %d", p)
	}
}

func TestTracker_PercentFallsBackToFileCount(t *testing.T) {
	tr := NewTracker(0, 3)
	if p := tr.Percent(0); p != 33 {
		t.Errorf("Expected 33, got %d", p)
	}
	if p := tr.Percent(2); p != 100 {
		t.Errorf("Expected 100, got %d", p)
	}
}

func TestTracker_PercentIsClamped(t *testing.T) {
	tr := NewTracker(10, 1)
	tr.Advance(50)
	if p := tr.Percent(0); p != 100 {
		t.Errorf("Expected 100, got %d", p)
	}
}

func TestTracker_NeverDecreases(t *testing.T) {
	tr := NewTracker(100, 2)
	tr.Advance(40)
	tr.Advance(-10)
	tr.Advance(0)
	if got := tr.Processed(); got != 40 {
		t.Errorf("Expected 40 processed bytes, got %d", got)
	}
}

func TestTracker_ConvertedETAAndSpeed(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	tr := NewTracker(4*megabyte, 2).WithClock(clock.now)
	tr.Start()

	clock.t = clock.t.Add(10 * time.Second)
	tr.Advance(megabyte)
	s := tr.Converted(0)

	if s.Percent != 25 {
		t.Errorf("Expected 25%%, got %d", s.Percent)
	}
	if s.ETA != "ETA: 30s" {
		t.Errorf("Expected 'ETA: 30s', got %q", s.ETA)
	}
	if s.Speed != "Speed: 0.10 MB/s" {
		t.Errorf("Expected 'Speed: 0.10 MB/s', got %q", s.Speed)
	}

	clock.t = clock.t.Add(110 * time.Second)
	tr.Advance(megabyte)
	s = tr.Converted(1)
	if s.ETA != "ETA: 2m 0s" {
		t.Errorf("Expected 'ETA: 2m 0s', got %q", s.ETA)
	}
}

func TestTracker_ConvertedBeforeAnyBytes(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	tr := NewTracker(100, 1).WithClock(clock.now)
	tr.Start()

	s := tr.Converted(0)
	if s.ETA != CalculatingETA || s.Speed != CalculatingSpeed {
		t.Errorf("Expected placeholders, got %q / %q", s.ETA, s.Speed)
	}
}

func TestTracker_Skipped(t *testing.T) {
	tr := NewTracker(200, 2)
	tr.Advance(100)
	s := tr.Skipped(0)
	if s.Percent != 50 || s.ETA != SkippingETA || s.Speed != "" {
		t.Errorf("Unexpected skip snapshot: %+v", s)
	}
}
