// Package decoder turns an input file into an in-memory raster, already sized
// by the resolution policy for its source kind.
package decoder

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"batchConverter/worker/media"
	"batchConverter/worker/resolution"
)

const (
	DefaultLargeFileThreshold = 100 * 1024 * 1024
	DefaultMaxPixels          = 256 * 1024 * 1024
)

// Request describes one file to decode.
type Request struct {
	Path   string
	Size   int64
	Preset media.Preset
}

// Decoder is implemented once per source kind. Decode returns a raster that
// no longer references any decoder-internal structure (layers, document handles,
// file buffers), so dropping it releases everything.
type Decoder interface {
	Kind() media.SourceKind
	Dimensions(path string) (width, height int, err error)
	Decode(req Request) (image.Image, error)
}

// Limits bound the memory a single decode may use.
type Limits struct {
	// MaxPixels caps native and target pixel counts; 0 disables the check.
	MaxPixels int64
	// LargeFileThreshold switches raster inputs to streamed decoding.
	LargeFileThreshold int64
}

func DefaultLimits() Limits {
	return Limits{
		MaxPixels:          DefaultMaxPixels,
		LargeFileThreshold: DefaultLargeFileThreshold,
	}
}

func (l Limits) allow(width, height int) error {
	if l.MaxPixels > 0 && int64(width)*int64(height) > l.MaxPixels {
		return fmt.Errorf("%dx%d over %d pixels: %w", width, height, l.MaxPixels, ErrOutOfMemory)
	}
	return nil
}

// Set dispatches to the decoder registered for a source kind.
type Set struct {
	decoders map[media.SourceKind]Decoder
}

func NewSet(logger *zap.Logger, policy resolution.Policy, limits Limits) *Set {
	return NewSetOf(
		NewRaster(logger, policy, limits),
		NewComposite(logger, policy, limits),
		NewDocument(logger, policy, limits),
	)
}

func NewSetOf(decoders ...Decoder) *Set {
	s := &Set{decoders: make(map[media.SourceKind]Decoder, len(decoders))}
	for _, d := range decoders {
		s.decoders[d.Kind()] = d
	}
	return s
}

func (s *Set) For(kind media.SourceKind) (Decoder, error) {
	d, ok := s.decoders[kind]
	if !ok {
		return nil, fmt.Errorf("%s: %w", kind, ErrUnsupportedKind)
	}
	return d, nil
}
