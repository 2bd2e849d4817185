//go:build mage

// Package main contains Mage build targets for imgmerge developer tooling.
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir     = "bin"
	binName    = "imgmerge"
	cmdPkg     = "./cmd/imgmerge"
	samplesDir = "samples"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Demo builds the binary, writes sample images and merges them at 50%.
func Demo() error {
	mg.Deps(Build, Samples)
	return sh.RunV(filepath.Join(binDir, binName), "-f", samplesDir, "-q", "50", "-o", "samples.pdf")
}

// sample describes one generated fixture image.
type sample struct {
	name string
	w, h int
	fill color.Color
}

var samples = []sample{
	{"01-red.png", 400, 300, color.NRGBA{R: 220, G: 40, B: 40, A: 255}},
	{"02-translucent.png", 300, 400, color.NRGBA{R: 40, G: 120, B: 220, A: 96}},
	{"03-green.jpg", 600, 400, color.RGBA{R: 40, G: 180, B: 90, A: 255}},
	{"04-gray.jpeg", 256, 256, color.Gray{Y: 128}},
	{"skipped.gif", 10, 10, color.Black},
}

// Samples writes a folder of fixture images for manual runs. The .gif entry
// holds PNG bytes; it only exists to show that unsupported names are skipped.
func Samples() error {
	if err := os.MkdirAll(samplesDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", samplesDir, err)
	}
	for _, s := range samples {
		img := image.NewNRGBA(image.Rect(0, 0, s.w, s.h))
		for y := 0; y < s.h; y++ {
			for x := 0; x < s.w; x++ {
				img.Set(x, y, s.fill)
			}
		}
		if err := writeSample(filepath.Join(samplesDir, s.name), img); err != nil {
			return err
		}
		fmt.Println("  ", s.name)
	}
	return nil
}

func writeSample(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".jpg") || strings.HasSuffix(lower, ".jpeg") {
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
	} else {
		err = png.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

// Stats prints Go production and test line counts.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	return nil
}

// countGoLines walks the directory tree and counts non-blank lines in Go files.
// If testOnly is true, count only _test.go files; otherwise count non-test .go files.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), "_") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				total++
			}
		}
		return nil
	})
	return total, err
}
