package decoder

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"

	"batchConverter/worker/media"
	"batchConverter/worker/resolution"
)

type Raster struct {
	logger *zap.Logger
	policy resolution.Policy
	limits Limits
}

func NewRaster(logger *zap.Logger, policy resolution.Policy, limits Limits) *Raster {
	return &Raster{logger: logger, policy: policy, limits: limits}
}

func (d *Raster) Kind() media.SourceKind {
	return media.KindRaster
}

func (d *Raster) Dimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(bufio.NewReader(f))
	if err != nil {
		return 0, 0, fmt.Errorf("read image header: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

func (d *Raster) Decode(req Request) (image.Image, error) {
	w, h, err := d.Dimensions(req.Path)
	if err != nil {
		return nil, err
	}
	target := d.policy.Raster(w, h)
	if err := d.limits.allow(w, h); err != nil {
		return nil, err
	}
	if err := d.limits.allow(target.Width, target.Height); err != nil {
		return nil, err
	}

	src, err := d.open(req)
	if err != nil {
		return nil, err
	}
	if target.Width == w && target.Height == h {
		return src, nil
	}

	d.logger.Debug("Upscaling raster",
		zap.String("path", req.Path),
		zap.Int("width", target.Width),
		zap.Int("height", target.Height),
	)
	return imaging.Resize(src, target.Width, target.Height, imaging.Lanczos), nil
}

// open reads small files in one go; above the threshold the file is decoded
// straight from the handle so the encoded bytes and the decoded buffer are
// never held together.
func (d *Raster) open(req Request) (image.Image, error) {
	if d.limits.LargeFileThreshold > 0 && req.Size > d.limits.LargeFileThreshold {
		f, err := os.Open(req.Path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		img, err := imaging.Decode(bufio.NewReaderSize(f, 1<<20))
		if err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
		return img, nil
	}

	data, err := os.ReadFile(req.Path)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
