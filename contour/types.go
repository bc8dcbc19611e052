// SPDX-License-Identifier: MIT

package contour

import (
	"errors"

	"github.com/katalvlaran/difftrace/field"
)

// ErrNilMask indicates a nil mask argument.
var ErrNilMask = errors.New("contour: nil mask")

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
)

// offsets returns the (drow, dcol) neighbor offsets for c.
func (c Connectivity) offsets() [][2]int {
	if c == Conn8 {
		return [][2]int{{-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}}
	}

	return [][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}
}

// Approx selects how border points are reported.
type Approx int

const (
	// None keeps every border cell.
	None Approx = iota
	// Simple keeps only the end points of straight runs.
	Simple
)

// Contour is one traced border.
type Contour struct {
	Points []field.Point // border cells in tracing order, closed implicitly
	Hole   bool          // true for a hole border, false for an outer border
	Parent int           // index of the enclosing contour, -1 at top level
}

// Extractor turns a mask into ordered boundary point sequences.
type Extractor interface {
	Extract(m *field.Mask) ([]Contour, error)
}
