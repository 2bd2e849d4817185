// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/imgmerge/pkg/types"
)

func TestSupported(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"photo.jpg", true},
		{"photo.JPG", true},
		{"photo.jpeg", true},
		{"Scan.JpEg", true},
		{"diagram.png", true},
		{"diagram.PNG", true},
		{"anim.gif", false},
		{"bitmap.bmp", false},
		{"notes.txt", false},
		{"png", false},
		{"photo.jpg.bak", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Supported(tt.name))
		})
	}
}

func TestImages(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) string
		want    []string
		wantErr error
	}{
		{
			name: "filters by extension",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				for _, n := range []string{"b.jpg", "a.PNG", "c.jpeg", "d.gif", "e.bmp", "f.txt"} {
					writeFile(t, dir, n)
				}
				return dir
			},
			want: []string{"a.PNG", "b.jpg", "c.jpeg"},
		},
		{
			name: "does not recurse",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "top.png")
				sub := filepath.Join(dir, "nested.png")
				require.NoError(t, os.Mkdir(sub, 0o755))
				writeFile(t, sub, "inner.png")
				return dir
			},
			want: []string{"top.png"},
		},
		{
			name: "empty folder",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			want: nil,
		},
		{
			name: "missing folder",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing")
			},
			wantErr: types.ErrInvalidInput,
		},
		{
			name: "path is a file",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "image.png")
				return filepath.Join(dir, "image.png")
			},
			wantErr: types.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			got, err := Images(dir)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			var names []string
			for _, p := range Sorted(got) {
				assert.Equal(t, dir, filepath.Dir(p))
				names = append(names, filepath.Base(p))
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestSorted(t *testing.T) {
	in := []string{"dir/c.png", "dir/a.jpg", "dir/B.jpeg", "dir/b.png"}
	got := Sorted(in)

	assert.Equal(t, []string{"dir/B.jpeg", "dir/a.jpg", "dir/b.png", "dir/c.png"}, got)
	assert.Equal(t, "dir/c.png", in[0], "input must not be reordered")
}

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
}
