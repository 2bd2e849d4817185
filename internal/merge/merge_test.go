// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/imgmerge/internal/page"
	"github.com/pdiddy/imgmerge/pkg/types"
)

func TestMain(m *testing.M) {
	api.DisableConfigDir()
	os.Exit(m.Run())
}

// makePage renders a w x h blank image into a single-page PDF in dir and
// returns the page path.
func makePage(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	imgPath := filepath.Join(dir, name)
	f, err := os.Create(imgPath)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))))
	require.NoError(t, f.Close())

	conv, err := page.NewConverter(types.DefaultPageConfig(), nil)
	require.NoError(t, err)
	p, err := conv.Convert(imgPath, 100)
	require.NoError(t, err)
	return p.Path
}

func TestMerge_PageCountAndOrder(t *testing.T) {
	dir := t.TempDir()
	wide := makePage(t, dir, "wide.png", 120, 60)
	tall := makePage(t, dir, "tall.png", 60, 120)
	square := makePage(t, dir, "square.png", 80, 80)
	out := filepath.Join(dir, "out.pdf")

	require.NoError(t, NewMerger(nil).Merge([]string{tall, wide, square}, out))

	n, err := PageCount(out)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	dims, err := api.PageDimsFile(out)
	require.NoError(t, err)
	require.Len(t, dims, 3)
	assert.Less(t, dims[0].Width, dims[0].Height, "page 1 should be the tall image")
	assert.Greater(t, dims[1].Width, dims[1].Height, "page 2 should be the wide image")
	assert.InDelta(t, dims[2].Width, dims[2].Height, 0.01, "page 3 should be the square image")
}

func TestMerge_SinglePage(t *testing.T) {
	dir := t.TempDir()
	only := makePage(t, dir, "only.png", 40, 30)
	out := filepath.Join(dir, "single.pdf")

	require.NoError(t, NewMerger(nil).Merge([]string{only}, out))

	n, err := PageCount(out)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMerge_OutputMode(t *testing.T) {
	dir := t.TempDir()
	a := makePage(t, dir, "a.png", 20, 20)
	b := makePage(t, dir, "b.png", 20, 20)

	for name, pages := range map[string][]string{"single.pdf": {a}, "merged.pdf": {a, b}} {
		t.Run(name, func(t *testing.T) {
			out := filepath.Join(dir, name)
			require.NoError(t, NewMerger(nil).Merge(pages, out))

			info, err := os.Stat(out)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
		})
	}
}

func TestMerge_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, dir string) (pages []string, out string)
		wantErr error
	}{
		{
			name: "no pages",
			setup: func(t *testing.T, dir string) ([]string, string) {
				return nil, filepath.Join(dir, "out.pdf")
			},
			wantErr: types.ErrEmptyInput,
		},
		{
			name: "missing page",
			setup: func(t *testing.T, dir string) ([]string, string) {
				good := makePage(t, dir, "a.png", 10, 10)
				return []string{good, filepath.Join(dir, "gone.pdf")}, filepath.Join(dir, "out.pdf")
			},
			wantErr: types.ErrMerge,
		},
		{
			name: "corrupt page among several",
			setup: func(t *testing.T, dir string) ([]string, string) {
				good := makePage(t, dir, "a.png", 10, 10)
				bad := filepath.Join(dir, "bad.pdf")
				require.NoError(t, os.WriteFile(bad, []byte("not a pdf"), 0o644))
				return []string{good, bad}, filepath.Join(dir, "out.pdf")
			},
			wantErr: types.ErrMerge,
		},
		{
			name: "corrupt single page",
			setup: func(t *testing.T, dir string) ([]string, string) {
				bad := filepath.Join(dir, "bad.pdf")
				require.NoError(t, os.WriteFile(bad, []byte("not a pdf"), 0o644))
				return []string{bad}, filepath.Join(dir, "out.pdf")
			},
			wantErr: types.ErrMerge,
		},
		{
			name: "output directory missing",
			setup: func(t *testing.T, dir string) ([]string, string) {
				good := makePage(t, dir, "a.png", 10, 10)
				return []string{good}, filepath.Join(dir, "no", "such", "out.pdf")
			},
			wantErr: types.ErrWrite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			pages, out := tt.setup(t, dir)

			err := NewMerger(nil).Merge(pages, out)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoFileExists(t, out)

			leftovers, _ := filepath.Glob(filepath.Join(dir, ".out.pdf.*.tmp"))
			assert.Empty(t, leftovers, "staging file should be removed")
		})
	}
}
