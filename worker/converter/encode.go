package converter

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"
	"github.com/gen2brain/jpegli"
	"github.com/go-pdf/fpdf"
	"golang.org/x/image/tiff"

	"batchConverter/worker/media"
)

const (
	// DefaultPDFDPI is used unless the source was a layered composite.
	DefaultPDFDPI = 1200
	pointsPerInch = 72
)

// Meta carries the per-file parameters an encoder may need.
type Meta struct {
	DPI float64
}

type encodeFunc func(w io.Writer, img image.Image, meta Meta) error

var encoders = map[media.Format]encodeFunc{
	media.FormatPNG:  encodePNG,
	media.FormatJPEG: encodeJPEG,
	media.FormatBMP:  encodeBMP,
	media.FormatGIF:  encodeGIF,
	media.FormatTIFF: encodeTIFF,
	media.FormatWEBP: encodeWEBP,
	media.FormatPDF:  encodePDF,
}

// Encode writes img in the target format with its maximum-fidelity settings.
func Encode(w io.Writer, img image.Image, target media.Format, meta Meta) error {
	enc, ok := encoders[target]
	if !ok {
		return fmt.Errorf("%s: %w", target, media.ErrUnknownFormat)
	}
	return enc(w, img, meta)
}

func encodePNG(w io.Writer, img image.Image, _ Meta) error {
	return imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(png.NoCompression))
}

func encodeJPEG(w io.Writer, img image.Image, _ Meta) error {
	return jpegli.Encode(w, img, &jpegli.EncodingOptions{
		Quality:           100,
		ProgressiveLevel:  2,
		ChromaSubsampling: image.YCbCrSubsampleRatio444,
		OptimizeCoding:    true,
	})
}

func encodeBMP(w io.Writer, img image.Image, _ Meta) error {
	return imaging.Encode(w, img, imaging.BMP)
}

func encodeGIF(w io.Writer, img image.Image, _ Meta) error {
	return imaging.Encode(w, img, imaging.GIF, imaging.GIFNumColors(256))
}

func encodeTIFF(w io.Writer, img image.Image, _ Meta) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}

func encodeWEBP(w io.Writer, img image.Image, _ Meta) error {
	return nativewebp.Encode(w, img, nil)
}

// pdfPageSize maps pixels to points so the image prints at dpi.
func pdfPageSize(bounds image.Rectangle, dpi float64) (float64, float64) {
	if dpi <= 0 {
		dpi = DefaultPDFDPI
	}
	return float64(bounds.Dx()) * pointsPerInch / dpi, float64(bounds.Dy()) * pointsPerInch / dpi
}

func encodePDF(w io.Writer, img image.Image, meta Meta) error {
	width, height := pdfPageSize(img.Bounds(), meta.DPI)

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: width, Ht: height},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	var page bytes.Buffer
	if err := imaging.Encode(&page, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestSpeed)); err != nil {
		return fmt.Errorf("embed page image: %w", err)
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("page", opts, &page)
	doc.ImageOptions("page", 0, 0, width, height, false, opts, 0, "")

	return doc.Output(w)
}
