//go:build fitz

package decoder

import (
	"image"

	"github.com/gen2brain/go-fitz"
)

type fitzRenderer struct{}

func newPageRenderer() pageRenderer {
	return fitzRenderer{}
}

func (fitzRenderer) firstPageSize(path string) (float64, float64, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return 0, 0, err
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return 0, 0, ErrEmptyDocument
	}
	bound, err := doc.Bound(0)
	if err != nil {
		return 0, 0, err
	}
	return float64(bound.Dx()), float64(bound.Dy()), nil
}

// renderFirstPage closes the document before returning; the pixmap has
// already been copied into Go memory.
func (fitzRenderer) renderFirstPage(path string, dpi float64) (image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, ErrEmptyDocument
	}
	img, err := doc.ImageDPI(0, dpi)
	if err != nil {
		return nil, err
	}
	return img, nil
}
