package media

import "strings"

// Format is a conversion target.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatBMP  Format = "bmp"
	FormatGIF  Format = "gif"
	FormatTIFF Format = "tiff"
	FormatWEBP Format = "webp"
	FormatPDF  Format = "pdf"
)

var formats = []Format{FormatPNG, FormatJPEG, FormatBMP, FormatGIF, FormatTIFF, FormatWEBP, FormatPDF}

func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range formats {
		if f == known {
			return f, nil
		}
	}
	return "", ErrUnknownFormat
}

// Extension is the canonical lowercase file extension, without the dot.
func (f Format) Extension() string {
	return string(f)
}

func (f Format) String() string {
	return string(f)
}
