// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ResampleFilter names the interpolation kernel used when scaling pages.
type ResampleFilter string

const (
	ResampleNearest    ResampleFilter = "nearest"
	ResampleBilinear   ResampleFilter = "bilinear"
	ResampleCatmullRom ResampleFilter = "catmullrom"
)

const (
	// DefaultQuality keeps the original pixel dimensions.
	DefaultQuality = 100

	// DefaultOutput is the merged document written when no path is given.
	DefaultOutput = "output.pdf"

	// DefaultDPI is the resolution every page is written at.
	DefaultDPI = 100

	// DefaultJPEGQuality is the encoder quality for page pixels. It is not
	// the same thing as Config.Quality, which scales dimensions.
	DefaultJPEGQuality = 95
)

// PageConfig holds settings for rasterizing one image into a page document.
type PageConfig struct {
	// DPI is the page resolution in dots per inch (default 100).
	DPI int `json:"dpi" yaml:"dpi" mapstructure:"dpi"`

	// JPEGQuality is the JPEG encoder quality 1-100 for page pixels (default 95).
	JPEGQuality int `json:"jpeg_quality" yaml:"jpeg_quality" mapstructure:"jpeg_quality"`

	// Resample selects the interpolation kernel: nearest, bilinear, or catmullrom.
	Resample ResampleFilter `json:"resample" yaml:"resample" mapstructure:"resample"`
}

// Config holds the settings for one merge run.
type Config struct {
	PageConfig `yaml:",inline" mapstructure:",squash"`

	// Folder is the directory scanned (non-recursively) for images.
	Folder string `json:"folder" yaml:"folder" mapstructure:"folder"`

	// Quality is a percentage applied to both image dimensions (default 100).
	Quality int `json:"quality" yaml:"quality" mapstructure:"quality"`

	// Output is the merged PDF path (default "output.pdf").
	Output string `json:"output" yaml:"output" mapstructure:"output"`

	// Manifest is an optional path for a YAML report of the run.
	Manifest string `json:"manifest,omitempty" yaml:"manifest,omitempty" mapstructure:"manifest"`
}

// DefaultPageConfig returns the page settings used when nothing overrides them.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		DPI:         DefaultDPI,
		JPEGQuality: DefaultJPEGQuality,
		Resample:    ResampleCatmullRom,
	}
}

// DefaultConfig returns a Config with every default applied and no folder.
func DefaultConfig() Config {
	return Config{
		PageConfig: DefaultPageConfig(),
		Quality:    DefaultQuality,
		Output:     DefaultOutput,
	}
}
