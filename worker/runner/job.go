package runner

import "batchConverter/worker/media"

// Job is one batch. Files may repeat; order is kept unless the size sort
// succeeds.
type Job struct {
	ID        string
	Files     []string
	OutputDir string
	Format    media.Format
	Preset    media.Preset
}

type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateCancelled State = "cancelled"
	// StateFailed is only reached when the output directory cannot be created.
	StateFailed State = "failed"
)

type FileState string

const (
	FilePending   FileState = "pending"
	FileSkipped   FileState = "skipped"
	FileSucceeded FileState = "succeeded"
	FileFailed    FileState = "failed"
)

// fileRecord lives for one loop iteration.
type fileRecord struct {
	path  string
	ext   string
	size  int64
	state FileState
}

// Summary is computed once when the loop ends.
type Summary struct {
	State            State  `json:"state"`
	LastOutputPath   string `json:"last_output_path"`
	TotalInputBytes  int64  `json:"total_input_bytes"`
	TotalOutputBytes int64  `json:"total_output_bytes"`
	SuccessCount     int    `json:"success_count"`
	FailureCount     int    `json:"failure_count"`
}
