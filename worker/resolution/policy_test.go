package resolution

import (
	"math"
	"testing"

	"batchConverter/worker/media"
)

func TestComposite_WiderThanBox(t *testing.T) {
	got := Default().Composite(4000, 2000, media.PresetMid)
	if got.Width != 1920 || got.Height != 960 {
		t.Errorf("Expected 1920x960, got %dx%d", got.Width, got.Height)
	}
}

func TestComposite_TallerThanBox(t *testing.T) {
	got := Default().Composite(1000, 2000, media.PresetLow)
	if got.Width != 360 || got.Height != 720 {
		t.Errorf("Expected 360x720, got %dx%d", got.Width, got.Height)
	}
}

func TestComposite_Upscales(t *testing.T) {
	got := Default().Composite(640, 360, media.PresetHigh)
	if got.Width != 3840 || got.Height != 2160 {
		t.Errorf("Expected 3840x2160, got %dx%d", got.Width, got.Height)
	}
}

func TestComposite_KeepsAspectRatio(t *testing.T) {
	p := Default()
	sizes := [][2]int{{4000, 2000}, {1234, 5678}, {3000, 3000}, {7, 3}, {1921, 1079}, {500, 281}}
	for _, preset := range []media.Preset{media.PresetLow, media.PresetMid, media.PresetHigh} {
		box := preset.Box()
		for _, s := range sizes {
			w, h := s[0], s[1]
			got := p.Composite(w, h, preset)

			if got.Width != box.Width && got.Height != box.Height {
				t.Errorf("%s %dx%d: neither axis binds the box: %dx%d", preset, w, h, got.Width, got.Height)
			}
			if got.Width > box.Width || got.Height > box.Height {
				t.Errorf("%s %dx%d: result %dx%d exceeds box", preset, w, h, got.Width, got.Height)
			}

			// Compare the free axis against the exact value, within a pixel.
			wantH := float64(got.Width) * float64(h) / float64(w)
			wantW := float64(got.Height) * float64(w) / float64(h)
			if math.Abs(float64(got.Height)-wantH) > 1 && math.Abs(float64(got.Width)-wantW) > 1 {
				t.Errorf("%s %dx%d: aspect drifted: %dx%d", preset, w, h, got.Width, got.Height)
			}
		}
	}
}

func TestRaster_NeverDownscales(t *testing.T) {
	p := Default()
	for _, s := range [][2]int{{3840, 2160}, {5000, 4000}, {8000, 2160}} {
		got := p.Raster(s[0], s[1])
		if got.Width != s[0] || got.Height != s[1] {
			t.Errorf("%dx%d: expected unchanged, got %dx%d", s[0], s[1], got.Width, got.Height)
		}
	}
}

func TestRaster_Upscale(t *testing.T) {
	p := Default()
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{1920, 1080, 3840, 2160},
		{1000, 1000, 3840, 3840},
		{4000, 1000, 8640, 2160},
		{3000, 2160, 3840, 2765},
	}
	for _, tt := range tests {
		got := p.Raster(tt.w, tt.h)
		if got.Width != tt.wantW || got.Height != tt.wantH {
			t.Errorf("%dx%d: expected %dx%d, got %dx%d", tt.w, tt.h, tt.wantW, tt.wantH, got.Width, got.Height)
		}
	}
}

func TestRasterScale(t *testing.T) {
	p := Default()
	if s := p.RasterScale(960, 1080); s != 4 {
		t.Errorf("Expected scale 4, got %v", s)
	}
	if s := p.RasterScale(9000, 9000); s != 1 {
		t.Errorf("Expected scale 1, got %v", s)
	}
}

func TestDocument(t *testing.T) {
	p := Default()
	if dpi := p.DocumentDPI(); dpi != 1152 {
		t.Errorf("Expected 1152 dpi, got %v", dpi)
	}
	got := p.Document(612, 792)
	if got.Width != 9792 || got.Height != 12672 {
		t.Errorf("Expected 9792x12672, got %dx%d", got.Width, got.Height)
	}
}
