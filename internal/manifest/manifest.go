// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest records what a merge run produced as a YAML file.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/imgmerge/pkg/types"
)

// Entry describes one page of the merged document.
type Entry struct {
	// Page is the 1-based page number in the output.
	Page int `yaml:"page"`

	// Source is the image file name, relative to the scanned folder.
	Source string `yaml:"source"`

	Original types.Size `yaml:"original"`
	Scaled   types.Size `yaml:"scaled"`
}

// Manifest is the report written after a successful merge.
type Manifest struct {
	Output    string    `yaml:"output"`
	Folder    string    `yaml:"folder"`
	Quality   int       `yaml:"quality"`
	DPI       int       `yaml:"dpi"`
	Pages     int       `yaml:"pages"`
	CreatedAt time.Time `yaml:"created_at"`
	Entries   []Entry   `yaml:"entries"`
}

// New builds a Manifest from the pages of a run, numbering them in order.
func New(cfg types.Config, pages []types.Page) Manifest {
	m := Manifest{
		Output:    cfg.Output,
		Folder:    cfg.Folder,
		Quality:   cfg.Quality,
		DPI:       cfg.DPI,
		Pages:     len(pages),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Entries:   make([]Entry, len(pages)),
	}
	for i, p := range pages {
		m.Entries[i] = Entry{
			Page:     i + 1,
			Source:   filepath.Base(p.Source),
			Original: p.Original,
			Scaled:   p.Scaled,
		}
	}
	return m
}

// Write marshals m as YAML to path.
func Write(path string, m Manifest) error {
	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest %s: %w: %v", path, types.ErrWrite, err)
	}
	return nil
}

// Read loads a manifest written by Write.
func Read(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}
