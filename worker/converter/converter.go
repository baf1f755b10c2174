package converter

import (
	"bufio"
	"fmt"
	"os"

	"go.uber.org/zap"

	"batchConverter/worker/decoder"
	"batchConverter/worker/media"
)

// Input is one classified source file.
type Input struct {
	Path   string
	Kind   media.SourceKind
	Size   int64
	Preset media.Preset
}

type Converter struct {
	logger   *zap.Logger
	decoders *decoder.Set
}

func NewConverter(logger *zap.Logger, decoders *decoder.Set) *Converter {
	return &Converter{logger: logger, decoders: decoders}
}

// Convert decodes, normalizes and encodes one file. The decoded raster lives
// only for the duration of the call.
func (c *Converter) Convert(in Input, target media.Format, outputPath string) error {
	c.logger.Debug("Starting conversion",
		zap.String("input", in.Path),
		zap.String("kind", in.Kind.String()),
		zap.String("output", outputPath),
		zap.String("format", target.String()),
	)

	dec, err := c.decoders.For(in.Kind)
	if err != nil {
		return err
	}

	src, err := dec.Decode(decoder.Request{Path: in.Path, Size: in.Size, Preset: in.Preset})
	if err != nil {
		c.logger.Warn("Failed to decode source",
			zap.String("path", in.Path),
			zap.Error(err),
		)
		return err
	}

	img := Normalize(src, target)

	if err := writeFile(outputPath, func(w *bufio.Writer) error {
		return Encode(w, img, target, metaFor(in))
	}); err != nil {
		c.logger.Warn("Failed to encode output",
			zap.String("path", outputPath),
			zap.Error(err),
		)
		return fmt.Errorf("failed to save %s: %w", target, err)
	}

	c.logger.Debug("Conversion completed",
		zap.String("output", outputPath),
	)
	return nil
}

func metaFor(in Input) Meta {
	if in.Kind == media.KindComposite {
		return Meta{DPI: in.Preset.DPI()}
	}
	return Meta{DPI: DefaultPDFDPI}
}

// writeFile replaces path; a partially written file is removed on error.
func writeFile(path string, write func(w *bufio.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriterSize(f, 1<<20)
	err = write(w)
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
