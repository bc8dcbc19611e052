// SPDX-License-Identifier: MIT

package field

import "fmt"

// Shape is the (rows, cols) size of a grid.
type Shape struct {
	Rows int
	Cols int
}

// Len returns the number of cells.
func (s Shape) Len() int { return s.Rows * s.Cols }

// Valid reports whether both dimensions are positive.
func (s Shape) Valid() bool { return s.Rows > 0 && s.Cols > 0 }

// Contains reports whether p lies inside a grid of this shape.
// Complexity: O(1).
func (s Shape) Contains(p Point) bool {
	return p.Row >= 0 && p.Row < s.Rows && p.Col >= 0 && p.Col < s.Cols
}

// Index maps p to its row-major offset. The caller guarantees Contains(p).
func (s Shape) Index(p Point) int { return p.Row*s.Cols + p.Col }

// String formats the shape as "(rows,cols)", the way NumPy prints it.
func (s Shape) String() string { return fmt.Sprintf("(%d,%d)", s.Rows, s.Cols) }

// Point is a grid coordinate. Row grows downward, Col grows to the right.
type Point struct {
	Row int
	Col int
}

func (p Point) String() string { return fmt.Sprintf("[%d %d]", p.Row, p.Col) }
