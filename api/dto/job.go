package dto

import "errors"

var (
	ErrJobNotFound = errors.New("job not found")
	ErrInvalidJob  = errors.New("invalid job request")
)

type CreateJobRequest struct {
	Files          []string `json:"files"`
	OutputDir      string   `json:"output_dir"`
	Format         string   `json:"format"`
	Preset         string   `json:"preset,omitempty"`
	SkipAll        bool     `json:"skip_all,omitempty"`
	SkipExtensions []string `json:"skip_extensions,omitempty"`
}

type JobResponse struct {
	ID           string             `json:"id"`
	TraceID      string             `json:"trace_id,omitempty"`
	Status       string             `json:"status"`
	Format       string             `json:"format,omitempty"`
	Preset       string             `json:"preset,omitempty"`
	FileCount    int                `json:"file_count,omitempty"`
	Progress     *ProgressResponse  `json:"progress,omitempty"`
	Summary      *SummaryResponse   `json:"summary,omitempty"`
	Errors       []JobErrorResponse `json:"errors,omitempty"`
	ErrorMessage string             `json:"error_message,omitempty"`
	CreatedAt    string             `json:"created_at,omitempty"`
	CompletedAt  *string            `json:"completed_at,omitempty"`
}

type ProgressResponse struct {
	Percent int    `json:"percent"`
	ETA     string `json:"eta"`
	Speed   string `json:"speed"`
}

type SummaryResponse struct {
	LastOutputPath   string `json:"last_output_path"`
	TotalInputBytes  int64  `json:"total_input_bytes"`
	TotalOutputBytes int64  `json:"total_output_bytes"`
	SuccessCount     int    `json:"success_count"`
	FailureCount     int    `json:"failure_count"`
}

type JobErrorResponse struct {
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}
