package validation

import (
	"fmt"
	"path/filepath"
	"strings"

	"batchConverter/api/dto"
	"batchConverter/worker/media"
)

// JobRequest checks a submission and fills in defaults. Files the worker
// would not recognize are accepted as long as at least one is convertible,
// since the worker passes over them without counting.
func JobRequest(req *dto.CreateJobRequest, maxFiles int) error {
	if len(req.Files) == 0 {
		return ErrNoFiles
	}
	if maxFiles > 0 && len(req.Files) > maxFiles {
		return fmt.Errorf("%d files, limit %d: %w", len(req.Files), maxFiles, ErrTooManyFiles)
	}

	req.OutputDir = strings.TrimSpace(req.OutputDir)
	if req.OutputDir == "" {
		return ErrMissingOutputDir
	}
	if !filepath.IsAbs(req.OutputDir) {
		return fmt.Errorf("output_dir %q: %w", req.OutputDir, ErrRelativePath)
	}

	convertible := false
	for _, f := range req.Files {
		if !filepath.IsAbs(f) {
			return fmt.Errorf("file %q: %w", f, ErrRelativePath)
		}
		if media.Classify(f) != media.KindUnrecognized {
			convertible = true
		}
	}
	if !convertible {
		return ErrNoConvertibleFiles
	}

	format, err := media.ParseFormat(req.Format)
	if err != nil {
		return fmt.Errorf("format %q: %w", req.Format, err)
	}
	req.Format = format.String()

	preset, err := media.ParsePreset(req.Preset)
	if err != nil {
		return fmt.Errorf("preset %q: %w", req.Preset, err)
	}
	req.Preset = string(preset)

	for i, ext := range req.SkipExtensions {
		req.SkipExtensions[i] = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	}

	return nil
}
