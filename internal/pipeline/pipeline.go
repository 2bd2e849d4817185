// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives a merge run: scan a folder, convert each image to
// a page document, merge the pages, and remove the page documents.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/pdiddy/imgmerge/internal/manifest"
	"github.com/pdiddy/imgmerge/internal/merge"
	"github.com/pdiddy/imgmerge/internal/page"
	"github.com/pdiddy/imgmerge/internal/scan"
	"github.com/pdiddy/imgmerge/pkg/types"
)

// Converter renders one image into a page document. *page.Converter is the
// production implementation.
type Converter interface {
	Convert(imagePath string, quality int) (types.Page, error)
}

// Merger concatenates page documents into outPath. *merge.Merger is the
// production implementation.
type Merger interface {
	Merge(pages []string, outPath string) error
}

// Result describes a completed run.
type Result struct {
	Output string
	Size   int64
	Pages  []types.Page
}

// Pipeline runs the scan, convert, merge sequence.
type Pipeline struct {
	conv   Converter
	merger Merger
	logger *zap.Logger
}

// New returns a Pipeline using the given stages. A nil logger is replaced by
// a no-op logger.
func New(conv Converter, merger Merger, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{conv: conv, merger: merger, logger: logger}
}

// NewDefault wires the pdfcpu-backed page converter and merger.
func NewDefault(cfg types.PageConfig, logger *zap.Logger) (*Pipeline, error) {
	conv, err := page.NewConverter(cfg, logger)
	if err != nil {
		return nil, err
	}
	return New(conv, merge.NewMerger(logger), logger), nil
}

// Validate checks the run settings that must hold before any file is read.
func Validate(cfg types.Config) error {
	if cfg.Quality < 1 || cfg.Quality > 100 {
		return fmt.Errorf("quality %d outside 1-100: %w", cfg.Quality, types.ErrInvalidInput)
	}
	if cfg.Folder == "" {
		return fmt.Errorf("folder is required: %w", types.ErrInvalidInput)
	}
	if cfg.Output == "" {
		return fmt.Errorf("output path is required: %w", types.ErrInvalidInput)
	}
	return nil
}

// Run converts every supported image in cfg.Folder, in lexicographic path
// order, and merges the pages into cfg.Output. Progress lines go to w. The
// first failure aborts the run. Page documents are removed on every return
// path, including failures and cancellation.
func (p *Pipeline) Run(ctx context.Context, cfg types.Config, w io.Writer) (res Result, err error) {
	if err := Validate(cfg); err != nil {
		return res, err
	}

	found, err := scan.Images(cfg.Folder)
	if err != nil {
		return res, err
	}
	if len(found) == 0 {
		return res, fmt.Errorf("folder %s: %w", cfg.Folder, types.ErrEmptyInput)
	}
	images := scan.Sorted(found)

	var temps tempFiles
	defer func() {
		if cerr := temps.Remove(); cerr != nil {
			if err == nil {
				err = fmt.Errorf("cleaning up temporary files: %w", cerr)
				return
			}
			p.logger.Warn("cleanup after failed run", zap.Error(cerr))
		}
	}()

	fmt.Fprintf(w, "Converting %d images at %d%% quality...\n", len(images), cfg.Quality)
	res.Pages = make([]types.Page, 0, len(images))
	for _, img := range images {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		// Register before converting so a partially written page is removed too.
		temps.Add(page.TempPath(img))

		pg, err := p.conv.Convert(img, cfg.Quality)
		if err != nil {
			return res, err
		}
		p.logger.Debug("converted", zap.String("path", img), zap.String("temp", pg.Path))
		if pg.Path != page.TempPath(img) {
			temps.Add(pg.Path)
		}
		res.Pages = append(res.Pages, pg)
	}

	paths := make([]string, len(res.Pages))
	for i, pg := range res.Pages {
		paths[i] = pg.Path
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}
	fmt.Fprintln(w, "Merging into a single PDF...")
	if err := p.merger.Merge(paths, cfg.Output); err != nil {
		return res, err
	}
	// An interrupt during the merge still fails the run.
	if err := ctx.Err(); err != nil {
		os.Remove(cfg.Output)
		return res, err
	}
	res.Output = cfg.Output
	if info, err := os.Stat(cfg.Output); err == nil {
		res.Size = info.Size()
	}

	fmt.Fprintf(w, "Saved to %s (%s). Cleaning up temporary files...\n", cfg.Output, humanize.Bytes(uint64(res.Size)))
	if err := temps.Remove(); err != nil {
		return res, fmt.Errorf("cleaning up temporary files: %w", err)
	}

	if cfg.Manifest != "" {
		if err := manifest.Write(cfg.Manifest, manifest.New(cfg, res.Pages)); err != nil {
			return res, err
		}
		p.logger.Debug("manifest written", zap.String("path", cfg.Manifest))
	}

	fmt.Fprintln(w, "Done.")
	return res, nil
}

// tempFiles tracks page documents owned by a run.
type tempFiles struct {
	paths []string
}

func (t *tempFiles) Add(path string) {
	t.paths = append(t.paths, path)
}

// Remove deletes every tracked file and forgets them. Files that were never
// created are ignored.
func (t *tempFiles) Remove() error {
	var err error
	for _, path := range t.paths {
		if rerr := os.Remove(path); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
			err = multierr.Append(err, rerr)
		}
	}
	t.paths = nil
	return err
}
