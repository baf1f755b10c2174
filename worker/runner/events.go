package runner

import "batchConverter/worker/progress"

// Event is one of ProgressEvent, ErrorEvent or CompletionEvent.
type Event interface {
	event()
}

type ProgressEvent struct {
	JobID string
	progress.Snapshot
}

type ErrorKind string

const (
	KindDirectory         ErrorKind = "directory-error"
	KindFileNotFound      ErrorKind = "file-not-found"
	KindOutOfMemory       ErrorKind = "out-of-memory"
	KindMissingDependency ErrorKind = "missing-dependency"
)

// ErrorEvent reports a failure. Any kind other than the constants above is
// the lowercase extension of the file that failed.
type ErrorEvent struct {
	JobID   string
	Path    string
	Message string
	Kind    ErrorKind
}

// Extension returns the kind when it names a file extension, else "".
func (e ErrorEvent) Extension() string {
	switch e.Kind {
	case KindDirectory, KindFileNotFound, KindOutOfMemory, KindMissingDependency:
		return ""
	}
	return string(e.Kind)
}

type CompletionEvent struct {
	JobID string
	Summary
}

func (ProgressEvent) event()   {}
func (ErrorEvent) event()      {}
func (CompletionEvent) event() {}

// eventCapacity bounds what a job can emit: per file at most an error and a
// progress event, plus the directory error or the completion.
func eventCapacity(job Job) int {
	return 2*len(job.Files) + 2
}
