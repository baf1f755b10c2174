//go:build !fitz

package decoder

import (
	"fmt"
	"image"
)

type missingRenderer struct{}

func newPageRenderer() pageRenderer {
	return missingRenderer{}
}

func (missingRenderer) firstPageSize(string) (float64, float64, error) {
	return 0, 0, fmt.Errorf("pdf rendering needs a build with -tags fitz: %w", ErrMissingDependency)
}

func (missingRenderer) renderFirstPage(string, float64) (image.Image, error) {
	return nil, fmt.Errorf("pdf rendering needs a build with -tags fitz: %w", ErrMissingDependency)
}
