package media

import (
	"path/filepath"
	"strings"
)

// SourceKind tells the decoder how to read an input file.
type SourceKind int

const (
	KindUnrecognized SourceKind = iota
	KindRaster
	KindComposite
	KindDocument
)

const (
	compositeExtension = "psd"
	documentExtension  = "pdf"
)

func (k SourceKind) String() string {
	switch k {
	case KindRaster:
		return "raster-image"
	case KindComposite:
		return "layered-composite"
	case KindDocument:
		return "paginated-document"
	default:
		return "unrecognized"
	}
}

// Extension returns the lowercase text after the last dot of the base name,
// or "" when there is none.
func Extension(path string) string {
	ext := filepath.Ext(filepath.Base(path))
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Classify maps a path to its source kind by extension alone.
func Classify(path string) SourceKind {
	ext := Extension(path)
	switch ext {
	case compositeExtension:
		return KindComposite
	case documentExtension:
		return KindDocument
	case "":
		return KindUnrecognized
	}
	for _, f := range formats {
		if ext == f.Extension() {
			return KindRaster
		}
	}
	return KindUnrecognized
}

// BaseName strips directory and extension.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// OutputPath places base name + target extension directly in dir.
func OutputPath(dir, input string, target Format) string {
	return filepath.Join(dir, BaseName(input)+"."+target.Extension())
}
