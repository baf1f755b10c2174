package media

import "errors"

var (
	ErrUnknownFormat = errors.New("unknown target format")
	ErrUnknownPreset = errors.New("unknown resolution preset")
)
