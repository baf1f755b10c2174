package decoder

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"batchConverter/worker/media"
	"batchConverter/worker/resolution"
)

// pageRenderer is backed by MuPDF when built with the fitz tag.
type pageRenderer interface {
	firstPageSize(path string) (widthPt, heightPt float64, err error)
	renderFirstPage(path string, dpi float64) (image.Image, error)
}

// Document renders only the first page, at a fixed zoom; the job preset is
// not consulted.
type Document struct {
	logger   *zap.Logger
	policy   resolution.Policy
	limits   Limits
	renderer pageRenderer
}

func NewDocument(logger *zap.Logger, policy resolution.Policy, limits Limits) *Document {
	return &Document{
		logger:   logger,
		policy:   policy,
		limits:   limits,
		renderer: newPageRenderer(),
	}
}

func (d *Document) Kind() media.SourceKind {
	return media.KindDocument
}

func (d *Document) Dimensions(path string) (int, int, error) {
	wPt, hPt, err := d.renderer.firstPageSize(path)
	if err != nil {
		return 0, 0, err
	}
	return int(wPt + 0.5), int(hPt + 0.5), nil
}

func (d *Document) Decode(req Request) (image.Image, error) {
	wPt, hPt, err := d.renderer.firstPageSize(req.Path)
	if err != nil {
		return nil, err
	}
	target := d.policy.Document(wPt, hPt)
	if err := d.limits.allow(target.Width, target.Height); err != nil {
		return nil, err
	}

	img, err := d.renderer.renderFirstPage(req.Path, d.policy.DocumentDPI())
	if err != nil {
		return nil, fmt.Errorf("render first page: %w", err)
	}

	d.logger.Debug("Rendered first page",
		zap.String("path", req.Path),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)
	return img, nil
}
