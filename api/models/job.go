package models

import (
	"time"
)

type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusCancelled JobStatus = "cancelled"
	StatusFailed    JobStatus = "failed"
)

func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusFailed
}

type Job struct {
	ID               string
	TraceID          string
	Files            []string
	OutputDir        string
	Format           string
	Preset           string
	SkipAll          bool
	SkipExtensions   []string
	Status           JobStatus
	ErrorMessage     string
	LastOutputPath   string
	TotalInputBytes  int64
	TotalOutputBytes int64
	SuccessCount     int
	FailureCount     int
	CreatedAt        time.Time
	UpdatedAt        time.Time
	CompletedAt      *time.Time
}

// JobError is one error event recorded by a worker.
type JobError struct {
	Path      string
	Kind      string
	Message   string
	CreatedAt time.Time
}

// Progress mirrors the snapshot a worker caches after every file.
type Progress struct {
	Percent   int    `json:"percent"`
	ETA       string `json:"eta"`
	Speed     string `json:"speed"`
	Processed int64  `json:"processed_bytes"`
	Total     int64  `json:"total_bytes"`
}
