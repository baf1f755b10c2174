package media

import "strings"

// Preset selects the bounding box used for layered-composite sources.
type Preset string

const (
	PresetLow  Preset = "low"
	PresetMid  Preset = "mid"
	PresetHigh Preset = "high"

	DefaultPreset = PresetHigh
)

// Box is a target bounding box in pixels.
type Box struct {
	Width  int
	Height int
}

var presetBoxes = map[Preset]Box{
	PresetLow:  {Width: 1280, Height: 720},
	PresetMid:  {Width: 1920, Height: 1080},
	PresetHigh: {Width: 3840, Height: 2160},
}

var presetDPI = map[Preset]float64{
	PresetLow:  300,
	PresetMid:  600,
	PresetHigh: 1200,
}

// ParsePreset accepts the preset names plus the HD/FHD/4K aliases.
// An empty string yields the default preset.
func ParsePreset(s string) (Preset, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultPreset, nil
	case "low", "hd":
		return PresetLow, nil
	case "mid", "fhd":
		return PresetMid, nil
	case "high", "4k":
		return PresetHigh, nil
	}
	return "", ErrUnknownPreset
}

func (p Preset) Box() Box {
	if b, ok := presetBoxes[p]; ok {
		return b
	}
	return presetBoxes[DefaultPreset]
}

// DPI is the PDF resolution used when a layered-composite source is written as PDF.
func (p Preset) DPI() float64 {
	if d, ok := presetDPI[p]; ok {
		return d
	}
	return presetDPI[DefaultPreset]
}
