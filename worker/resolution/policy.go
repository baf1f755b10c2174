// Package resolution computes output dimensions for each source kind.
//
// Layered-composite sources are fitted into the job's preset box, which may
// shrink or enlarge them. Raster sources ignore the preset and are only ever
// enlarged, up to a fixed minimum box. Paginated documents are rendered at a
// fixed zoom over their native page units and ignore the preset as well.
package resolution

import (
	"math"

	"batchConverter/worker/media"
)

const (
	// DocumentZoom multiplies the native 72 dpi page units of a document.
	DocumentZoom  = 16
	pointsPerInch = 72
)

// DefaultRasterMinimum is the box every raster source is enlarged to reach.
var DefaultRasterMinimum = media.Box{Width: 3840, Height: 2160}

// Size is a pair of pixel dimensions.
type Size struct {
	Width  int
	Height int
}

// Policy holds the tunable parts of the rules. The zero value is not usable;
// use Default.
type Policy struct {
	RasterMinimum media.Box
}

func Default() Policy {
	return Policy{RasterMinimum: DefaultRasterMinimum}
}

// Composite fits w×h into the preset box, preserving aspect ratio. The axis
// that binds is taken exactly from the box; the other is rounded.
func (Policy) Composite(w, h int, preset media.Preset) Size {
	if w <= 0 || h <= 0 {
		return Size{Width: w, Height: h}
	}
	box := preset.Box()
	aspect := float64(w) / float64(h)
	boxAspect := float64(box.Width) / float64(box.Height)

	if aspect > boxAspect {
		return Size{Width: box.Width, Height: atLeastOne(math.Round(float64(box.Width) / aspect))}
	}
	return Size{Width: atLeastOne(math.Round(float64(box.Height) * aspect)), Height: box.Height}
}

// RasterScale is the uniform factor needed to reach the minimum box on both
// axes, never below 1.
func (p Policy) RasterScale(w, h int) float64 {
	if w <= 0 || h <= 0 {
		return 1
	}
	scale := max(1.0, float64(p.RasterMinimum.Width)/float64(w), float64(p.RasterMinimum.Height)/float64(h))
	return scale
}

// Raster returns the upscaled size, or w×h unchanged when no scaling is needed.
func (p Policy) Raster(w, h int) Size {
	scale := p.RasterScale(w, h)
	if scale <= 1 {
		return Size{Width: w, Height: h}
	}
	return Size{
		Width:  atLeastOne(math.Round(float64(w) * scale)),
		Height: atLeastOne(math.Round(float64(h) * scale)),
	}
}

// DocumentDPI is the render resolution for paginated documents.
func (Policy) DocumentDPI() float64 {
	return pointsPerInch * DocumentZoom
}

// Document converts page units (points) to rendered pixels.
func (p Policy) Document(widthPt, heightPt float64) Size {
	return Size{
		Width:  atLeastOne(math.Round(widthPt * DocumentZoom)),
		Height: atLeastOne(math.Round(heightPt * DocumentZoom)),
	}
}

func atLeastOne(v float64) int {
	if v < 1 {
		return 1
	}
	return int(v)
}
