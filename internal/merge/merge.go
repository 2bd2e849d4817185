// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge concatenates single-page PDF documents into one output.
package merge

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"

	"github.com/pdiddy/imgmerge/pkg/types"
)

const outputMode os.FileMode = 0o644

// Merger appends page documents, in order, into a single PDF.
type Merger struct {
	logger *zap.Logger
}

// NewMerger returns a Merger. A nil logger is replaced by a no-op logger.
func NewMerger(logger *zap.Logger) *Merger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Merger{logger: logger}
}

// Merge writes the pages of every document in pages, in the order given, to
// outPath. The result is staged beside outPath and renamed into place, so a
// failed merge leaves no output file.
func (m *Merger) Merge(pages []string, outPath string) (err error) {
	if len(pages) == 0 {
		return fmt.Errorf("merging into %s: %w", outPath, types.ErrEmptyInput)
	}

	files := make([]*os.File, 0, len(pages))
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()
	inputs := make([]io.ReadSeeker, 0, len(pages))
	for _, p := range pages {
		f, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("opening page %s: %w: %v", p, types.ErrMerge, err)
		}
		files = append(files, f)
		inputs = append(inputs, f)
	}

	tmp, err := os.CreateTemp(filepath.Dir(outPath), "."+filepath.Base(outPath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating %s: %w: %v", outPath, types.ErrWrite, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if len(inputs) == 1 {
		err = copyValidated(inputs[0], tmp, pages[0])
	} else {
		err = api.MergeRaw(inputs, tmp, false, model.NewDefaultConfiguration())
		if err != nil {
			err = fmt.Errorf("merging %d pages: %w: %v", len(inputs), types.ErrMerge, err)
		}
	}
	if err != nil {
		return err
	}

	// CreateTemp opens owner-only; give the output the mode a plain create would.
	if err = tmp.Chmod(outputMode); err != nil {
		return fmt.Errorf("writing %s: %w: %v", outPath, types.ErrWrite, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w: %v", outPath, types.ErrWrite, err)
	}
	if err = os.Rename(tmp.Name(), outPath); err != nil {
		return fmt.Errorf("writing %s: %w: %v", outPath, types.ErrWrite, err)
	}

	m.logger.Debug("merged", zap.String("path", outPath), zap.Int("pages", len(pages)))
	return nil
}

// copyValidated checks that rs parses as a PDF before copying it to w.
func copyValidated(rs io.ReadSeeker, w io.Writer, name string) error {
	if err := api.Validate(rs, model.NewDefaultConfiguration()); err != nil {
		return fmt.Errorf("validating page %s: %w: %v", name, types.ErrMerge, err)
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding page %s: %w: %v", name, types.ErrMerge, err)
	}
	if _, err := io.Copy(w, rs); err != nil {
		return fmt.Errorf("copying page %s: %w: %v", name, types.ErrWrite, err)
	}
	return nil
}

// PageCount returns the number of pages in the PDF at path.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages in %s: %w", path, err)
	}
	return n, nil
}
