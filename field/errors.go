// SPDX-License-Identifier: MIT

package field

import "errors"

// Every message is prefixed with "field: ..." so it greps well in run logs.
// Wrap with fmt.Errorf("ctx: %w", ErrX) at the outer boundary; callers match
// with errors.Is.
var (
	// ErrBadShape is returned when requested dimensions are not positive.
	ErrBadShape = errors.New("field: dimensions must be > 0")

	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("field: all rows must have the same length")

	// ErrOutOfRange indicates that a row or column index is outside the grid.
	ErrOutOfRange = errors.New("field: index out of range")

	// ErrShapeMismatch indicates two grids with different shapes.
	ErrShapeMismatch = errors.New("field: shape mismatch")

	// ErrNilField indicates a nil *Field or *Mask argument.
	ErrNilField = errors.New("field: nil grid")
)
