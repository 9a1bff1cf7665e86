package config

import (
	"encoding/json"
	"os"

	"github.com/soocke/scroll-stitch-go/stitch"
)

// Config holds runtime configuration for stitching and CLI behavior.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`
	// Alignment parameters
	PyramidLevels    int     `json:"pyramid_levels"`
	MaxSearchPercent float64 `json:"max_search_percent"`
	RefineWindowPx   int     `json:"refine_window_px"`
	SampleXStep      int     `json:"sample_x_step"`
	SampleYStep      int     `json:"sample_y_step"`
	CropTopPx        int     `json:"crop_top_px"`
	CropBottomPx     int     `json:"crop_bottom_px"`
	MinConfidence    float64 `json:"min_confidence"`
	ClampOffset      bool    `json:"clamp_offset"`
	// Compositing parameters
	BlendBandPx int `json:"blend_band_px"`
	// Workers bounds the scoring fan-out; 0 uses all CPUs.
	Workers int `json:"workers"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	d := stitch.DefaultOptions()
	return &Config{
		Debug:            false,
		PyramidLevels:    d.PyramidLevels,
		MaxSearchPercent: d.MaxSearchPercent,
		RefineWindowPx:   d.RefineWindowPx,
		SampleXStep:      d.SampleXStep,
		SampleYStep:      d.SampleYStep,
		CropTopPx:        0,
		CropBottomPx:     0,
		MinConfidence:    d.MinConfidence,
		ClampOffset:      d.ClampOffsetToRange,
		BlendBandPx:      d.BlendBandPx,
		Workers:          0,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	d := stitch.DefaultOptions()
	if c.PyramidLevels < 1 {
		c.PyramidLevels = d.PyramidLevels
	}
	if c.MaxSearchPercent <= 0 || c.MaxSearchPercent > 1 {
		c.MaxSearchPercent = d.MaxSearchPercent
	}
	if c.RefineWindowPx < 1 {
		c.RefineWindowPx = d.RefineWindowPx
	}
	if c.SampleXStep < 1 {
		c.SampleXStep = d.SampleXStep
	}
	if c.SampleYStep < 1 {
		c.SampleYStep = d.SampleYStep
	}
	if c.CropTopPx < 0 {
		c.CropTopPx = 0
	}
	if c.CropBottomPx < 0 {
		c.CropBottomPx = 0
	}
	if c.MinConfidence < -1 || c.MinConfidence > 1 {
		c.MinConfidence = d.MinConfidence
	}
	if c.BlendBandPx < 0 {
		c.BlendBandPx = d.BlendBandPx
	}
	if c.Workers < 0 {
		c.Workers = 0
	}
	return nil
}

// Options maps the config onto the stitch engine options.
func (c *Config) Options() stitch.Options {
	return stitch.Options{
		PyramidLevels:      c.PyramidLevels,
		MaxSearchPercent:   c.MaxSearchPercent,
		RefineWindowPx:     c.RefineWindowPx,
		SampleXStep:        c.SampleXStep,
		SampleYStep:        c.SampleYStep,
		CropTopPx:          c.CropTopPx,
		CropBottomPx:       c.CropBottomPx,
		MinConfidence:      c.MinConfidence,
		ClampOffsetToRange: c.ClampOffset,
		BlendBandPx:        c.BlendBandPx,
		Workers:            c.Workers,
	}
}

// Load reads a JSON config file and validates it. A missing file is an
// error; callers typically fall back to DefaultConfig.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := DefaultConfig()
	if err := json.Unmarshal(b, c); err != nil {
		return nil, err
	}
	_ = c.Validate()
	return c, nil
}

// Save writes the config as indented JSON.
func (c *Config) Save(path string) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
