// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Size is a pixel width and height.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Empty reports whether either dimension is zero or negative.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Page is an intermediate single-page document derived from one image.
type Page struct {
	// Source is the image the page was rendered from.
	Source string `json:"source" yaml:"source"`

	// Path is the temporary PDF holding the page.
	Path string `json:"path" yaml:"path"`

	// Original is the decoded image size before scaling.
	Original Size `json:"original" yaml:"original"`

	// Scaled is the pixel size written into the page.
	Scaled Size `json:"scaled" yaml:"scaled"`
}
