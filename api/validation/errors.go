package validation

import "errors"

var (
	ErrNoFiles            = errors.New("at least one file is required")
	ErrTooManyFiles       = errors.New("too many files in one job")
	ErrRelativePath       = errors.New("paths must be absolute")
	ErrNoConvertibleFiles = errors.New("no file has a supported extension")
	ErrMissingOutputDir   = errors.New("output_dir is required")
)
