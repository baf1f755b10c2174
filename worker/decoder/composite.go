package decoder

import (
	"bufio"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	_ "github.com/oov/psd"
	"go.uber.org/zap"

	"batchConverter/worker/media"
	"batchConverter/worker/resolution"
)

// Composite decodes layered documents through their merged composite and
// fits the result into the job's preset box.
type Composite struct {
	logger *zap.Logger
	policy resolution.Policy
	limits Limits
}

func NewComposite(logger *zap.Logger, policy resolution.Policy, limits Limits) *Composite {
	return &Composite{logger: logger, policy: policy, limits: limits}
}

func (d *Composite) Kind() media.SourceKind {
	return media.KindComposite
}

func (d *Composite) Dimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(bufio.NewReader(f))
	if err != nil {
		return 0, 0, fmt.Errorf("read composite header: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

func (d *Composite) Decode(req Request) (image.Image, error) {
	w, h, err := d.Dimensions(req.Path)
	if err != nil {
		return nil, err
	}
	target := d.policy.Composite(w, h, req.Preset)
	if err := d.limits.allow(w, h); err != nil {
		return nil, err
	}
	if err := d.limits.allow(target.Width, target.Height); err != nil {
		return nil, err
	}

	flat, err := d.flatten(req.Path)
	if err != nil {
		return nil, err
	}

	d.logger.Debug("Resizing composite",
		zap.String("path", req.Path),
		zap.String("preset", string(req.Preset)),
		zap.Int("width", target.Width),
		zap.Int("height", target.Height),
	)
	return imaging.Resize(flat, target.Width, target.Height, imaging.Lanczos), nil
}

// flatten keeps only the merged composite; layer data is dropped with the
// file handle when it returns.
func (d *Composite) flatten(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(bufio.NewReaderSize(f, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("decode composite: %w", err)
	}
	if format != "psd" && format != "psb" {
		d.logger.Warn("Composite source decoded as another format",
			zap.String("path", path),
			zap.String("format", format),
		)
	}
	return img, nil
}
