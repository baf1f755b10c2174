package decoder

import "errors"

var (
	ErrOutOfMemory       = errors.New("image exceeds decode memory budget")
	ErrMissingDependency = errors.New("optional decoder dependency not available")
	ErrUnsupportedKind   = errors.New("no decoder for source kind")
	ErrEmptyDocument     = errors.New("document has no pages")
)
