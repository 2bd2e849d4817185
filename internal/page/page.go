// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package page rasterizes one image into a single-page PDF document.
package page

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"os"

	// Register decoders for image.Decode.
	_ "image/png"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	pdftypes "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/pdiddy/imgmerge/pkg/types"
)

// TempSuffix is appended to an image path to name its page document.
const TempSuffix = ".temp.pdf"

// TempPath returns the page document path for imagePath. The name is
// deterministic, so two runs over the same folder reuse it.
func TempPath(imagePath string) string {
	return imagePath + TempSuffix
}

// Converter turns images into single-page PDFs at a fixed resolution.
type Converter struct {
	cfg    types.PageConfig
	interp draw.Interpolator
	logger *zap.Logger
}

// NewConverter validates cfg and returns a Converter. A nil logger is
// replaced by a no-op logger.
func NewConverter(cfg types.PageConfig, logger *zap.Logger) (*Converter, error) {
	if cfg.DPI <= 0 {
		return nil, fmt.Errorf("dpi %d must be positive: %w", cfg.DPI, types.ErrInvalidInput)
	}
	if cfg.JPEGQuality < 1 || cfg.JPEGQuality > 100 {
		return nil, fmt.Errorf("jpeg quality %d outside 1-100: %w", cfg.JPEGQuality, types.ErrInvalidInput)
	}
	interp, err := Interpolator(cfg.Resample)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{cfg: cfg, interp: interp, logger: logger}, nil
}

// Interpolator maps a filter name to its x/image/draw kernel. An empty name
// selects CatmullRom.
func Interpolator(f types.ResampleFilter) (draw.Interpolator, error) {
	switch f {
	case types.ResampleNearest:
		return draw.NearestNeighbor, nil
	case types.ResampleBilinear:
		return draw.BiLinear, nil
	case types.ResampleCatmullRom, "":
		return draw.CatmullRom, nil
	default:
		return nil, fmt.Errorf("unknown resample filter %q: %w", f, types.ErrInvalidInput)
	}
}

// Convert decodes imagePath, flattens it to RGB, scales both dimensions by
// quality percent and writes the result to TempPath(imagePath).
func (c *Converter) Convert(imagePath string, quality int) (types.Page, error) {
	img, err := decode(imagePath)
	if err != nil {
		return types.Page{}, err
	}

	p := types.Page{
		Source:   imagePath,
		Path:     TempPath(imagePath),
		Original: sizeOf(img),
	}

	scaled, err := Scale(Flatten(img), quality, c.interp)
	if err != nil {
		return types.Page{}, fmt.Errorf("scaling %s: %w", imagePath, err)
	}
	p.Scaled = sizeOf(scaled)

	var pixels bytes.Buffer
	if err := jpeg.Encode(&pixels, scaled, &jpeg.Options{Quality: c.cfg.JPEGQuality}); err != nil {
		return types.Page{}, fmt.Errorf("encoding %s: %w: %v", imagePath, types.ErrWrite, err)
	}

	if err := c.writePage(p.Path, &pixels, p.Scaled); err != nil {
		return types.Page{}, err
	}

	c.logger.Debug("page written",
		zap.String("path", imagePath),
		zap.String("temp", p.Path),
		zap.Int("width", p.Scaled.Width),
		zap.Int("height", p.Scaled.Height),
	)
	return p, nil
}

// PageSize returns the page dimensions in points for an image of s pixels
// printed at dpi.
func PageSize(s types.Size, dpi int) (width, height float64) {
	return float64(s.Width) * 72 / float64(dpi), float64(s.Height) * 72 / float64(dpi)
}

// writePage imports the encoded pixels as the only page of a new PDF at
// path. A partially written file is removed.
func (c *Converter) writePage(path string, pixels io.Reader, px types.Size) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating page %s: %w: %v", path, types.ErrWrite, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing page %s: %w: %v", path, types.ErrWrite, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	// pdfcpu ignores DPI for full-page placement, so the page box is sized
	// here and the image is placed at its DPI-scaled size to fill it.
	w, h := PageSize(px, c.cfg.DPI)
	imp := pdfcpu.DefaultImportConfig()
	imp.PageDim = &pdftypes.Dim{Width: w, Height: h}
	imp.UserDim = true
	imp.Pos = pdftypes.Center
	imp.Scale = 1
	imp.ScaleAbs = true
	imp.DPI = c.cfg.DPI

	if err := api.ImportImages(nil, f, []io.Reader{pixels}, imp, model.NewDefaultConfiguration()); err != nil {
		return fmt.Errorf("writing page %s: %w: %v", path, types.ErrWrite, err)
	}
	return nil
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image %s: %w: %v", path, types.ErrDecode, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image %s: %w: %v", path, types.ErrDecode, err)
	}
	return img, nil
}

// Flatten returns img as an opaque RGBA image. Alpha is composited over
// white and palette entries are expanded.
func Flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

// TargetSize returns s scaled by quality percent, truncating each dimension.
func TargetSize(s types.Size, quality int) types.Size {
	return types.Size{
		Width:  s.Width * quality / 100,
		Height: s.Height * quality / 100,
	}
}

// Scale resamples img to TargetSize. Quality 100 returns img unchanged. A
// target with a zero or negative dimension wraps types.ErrInvalidInput.
func Scale(img *image.RGBA, quality int, interp draw.Interpolator) (*image.RGBA, error) {
	src := sizeOf(img)
	target := TargetSize(src, quality)
	if target.Empty() {
		return nil, fmt.Errorf("quality %d%% gives %dx%d page from %dx%d image: %w",
			quality, target.Width, target.Height, src.Width, src.Height, types.ErrInvalidInput)
	}
	if target == src {
		return img, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, target.Width, target.Height))
	interp.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst, nil
}

func sizeOf(img image.Image) types.Size {
	b := img.Bounds()
	return types.Size{Width: b.Dx(), Height: b.Dy()}
}
