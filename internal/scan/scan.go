// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan finds the images a run will convert.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/imgmerge/pkg/types"
)

// Extensions lists the supported image suffixes, lowercased.
var Extensions = []string{".jpg", ".jpeg", ".png"}

// Supported reports whether name ends in one of Extensions, ignoring case.
func Supported(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range Extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Images returns the supported image files directly inside dir. The result
// is in directory-listing order; use Sorted for a deterministic order.
// A missing path or a path that is not a directory wraps types.ErrInvalidInput.
func Images(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("folder %s: %w: %v", dir, types.ErrInvalidInput, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("folder %s is not a directory: %w", dir, types.ErrInvalidInput)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading folder %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !Supported(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// Sorted returns a copy of paths in lexicographic order.
func Sorted(paths []string) []string {
	out := make([]string, len(paths))
	copy(out, paths)
	sort.Strings(out)
	return out
}
