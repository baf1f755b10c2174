package converter

import (
	"image"

	"github.com/disintegration/imaging"

	"batchConverter/worker/media"
)

type layoutRule int

const (
	keepLayout layoutRule = iota
	// dropAlpha discards the alpha channel, leaving color values untouched.
	dropAlpha
	// expandPalette converts indexed images to an alpha-capable layout.
	expandPalette
)

var layoutRules = map[media.Format]layoutRule{
	media.FormatJPEG: dropAlpha,
	media.FormatPDF:  dropAlpha,
	media.FormatPNG:  expandPalette,
	media.FormatWEBP: expandPalette,
}

// Normalize adapts the pixel layout of img to what target can store.
func Normalize(img image.Image, target media.Format) image.Image {
	switch layoutRules[target] {
	case dropAlpha:
		if HasAlpha(img) {
			return withoutAlpha(img)
		}
	case expandPalette:
		if _, ok := img.(*image.Paletted); ok {
			return imaging.Clone(img)
		}
	}
	return img
}

func withoutAlpha(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}

// HasAlpha reports whether img is stored in an alpha-capable layout with at
// least one non-opaque pixel.
func HasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return true
}
