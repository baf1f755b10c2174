package media

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want SourceKind
	}{
		{"/in/poster.psd", KindComposite},
		{"/in/POSTER.PSD", KindComposite},
		{"/in/report.pdf", KindDocument},
		{"/in/photo.png", KindRaster},
		{"/in/photo.JPEG", KindRaster},
		{"/in/scan.tiff", KindRaster},
		{"/in/anim.gif", KindRaster},
		{"/in/pic.webp", KindRaster},
		{"/in/pic.bmp", KindRaster},
		{"/in/photo.jpg", KindUnrecognized},
		{"/in/notes.txt", KindUnrecognized},
		{"/in/README", KindUnrecognized},
		{"/in/archive.tar.gz", KindUnrecognized},
		{"/in/.png", KindRaster},
	}

	for _, tt := range tests {
		if got := Classify(tt.path); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	got := OutputPath("/out", "/in/a/Holiday.Photo.PNG", FormatWEBP)
	want := filepath.Join("/out", "Holiday.Photo.webp")
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" TIFF ")
	if err != nil || f != FormatTIFF {
		t.Fatalf("Expected tiff, got %q (%v)", f, err)
	}

	if _, err := ParseFormat("jpg"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}

func TestParsePreset(t *testing.T) {
	tests := map[string]Preset{
		"":     PresetHigh,
		"low":  PresetLow,
		"FHD":  PresetMid,
		"4k":   PresetHigh,
		"High": PresetHigh,
	}
	for in, want := range tests {
		got, err := ParsePreset(in)
		if err != nil {
			t.Fatalf("ParsePreset(%q) failed: %v", in, err)
		}
		if got != want {
			t.Errorf("ParsePreset(%q) = %s, want %s", in, got, want)
		}
	}

	if _, err := ParsePreset("ultra"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("Expected ErrUnknownPreset, got %v", err)
	}
}

func TestPresetTables(t *testing.T) {
	if b := PresetMid.Box(); b.Width != 1920 || b.Height != 1080 {
		t.Errorf("Expected 1920x1080, got %dx%d", b.Width, b.Height)
	}
	if d := PresetLow.DPI(); d != 300 {
		t.Errorf("Expected 300 DPI, got %v", d)
	}
	if d := Preset("bogus").DPI(); d != 1200 {
		t.Errorf("Expected default 1200 DPI, got %v", d)
	}
}
