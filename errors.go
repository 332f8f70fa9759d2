package treediff

import "errors"

var (
	// ErrTypeMismatch is returned by Match when the two roots do not share a
	// declared type.
	ErrTypeMismatch = errors.New("roots have different declared types")

	// ErrNilSide is returned by Match when one of the roots is nil.
	ErrNilSide = errors.New("side root is nil")

	// ErrNotRoot is returned by operations that only make sense on the root.
	ErrNotRoot = errors.New("node is not the root of a diff tree")
)

// SkipChildren is returned by a Walk callback to skip the descendants of the
// node it was called with.
var SkipChildren = errors.New("skip children")

var (
	// ErrReadOnly is returned when an update would write a read-only side.
	ErrReadOnly = errors.New("side is read-only")

	// ErrPending is returned when a node already holds an update that was not
	// restored.
	ErrPending = errors.New("update already pending")

	// ErrUpdateDenied is returned when an UpdateHandler refuses an update.
	ErrUpdateDenied = errors.New("update denied")
)
