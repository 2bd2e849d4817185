// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/imgmerge/pkg/types"
)

func TestNew(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.Folder = "scans"
	cfg.Quality = 50
	pages := []types.Page{
		{Source: "scans/a.png", Original: types.Size{Width: 100, Height: 100}, Scaled: types.Size{Width: 50, Height: 50}},
		{Source: "scans/b.jpg", Original: types.Size{Width: 200, Height: 200}, Scaled: types.Size{Width: 100, Height: 100}},
	}

	m := New(cfg, pages)

	assert.Equal(t, "output.pdf", m.Output)
	assert.Equal(t, 50, m.Quality)
	assert.Equal(t, 100, m.DPI)
	assert.Equal(t, 2, m.Pages)
	require.Len(t, m.Entries, 2)
	assert.Equal(t, Entry{Page: 1, Source: "a.png", Original: pages[0].Original, Scaled: pages[0].Scaled}, m.Entries[0])
	assert.Equal(t, 2, m.Entries[1].Page)
	assert.Equal(t, "b.jpg", m.Entries[1].Source)
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	cfg := types.DefaultConfig()
	cfg.Folder = dir
	m := New(cfg, []types.Page{{Source: "x/a.png", Scaled: types.Size{Width: 10, Height: 20}}})

	require.NoError(t, Write(path, m))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, "pages: 1"), text)
	assert.True(t, strings.Contains(text, "source: a.png"), text)

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, m.Entries, got.Entries)
	assert.True(t, m.CreatedAt.Equal(got.CreatedAt))
}

func TestWrite_Unwritable(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "missing", "run.yaml"), Manifest{})
	assert.ErrorIs(t, err, types.ErrWrite)
}
