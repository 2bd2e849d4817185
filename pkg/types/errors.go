// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Sentinel errors shared by every stage. Stages wrap them with the path
// involved; callers match with errors.Is.
var (
	// ErrInvalidInput covers a missing folder or an out-of-range quality.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyInput is returned when a folder holds no supported images.
	ErrEmptyInput = errors.New("no image files found")

	// ErrDecode is returned when an image cannot be opened or parsed.
	ErrDecode = errors.New("decode error")

	// ErrWrite is returned when a page or the output cannot be written.
	ErrWrite = errors.New("write error")

	// ErrMerge is returned when a page document cannot be read while merging.
	ErrMerge = errors.New("merge error")
)
