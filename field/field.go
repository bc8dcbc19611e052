// SPDX-License-Identifier: MIT

// Package field - Field storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Expose Data() so convolution and scans can run on the flat slice directly.
package field

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// ---------- error context tags ----------

const (
	ctxAt  = "At"  // method tag used in error wrappers
	ctxSet = "Set" // method tag used in error wrappers
)

// fieldErrorf wraps a sentinel with the Field method and coordinates.
func fieldErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Field.%s(%d,%d): %w", method, row, col, err)
}

// Field is a 2D scalar field stored row-major.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c (offset = i*c + j).
type Field struct {
	r, c int       // row and column counts (> 0)
	data []float64 // contiguous row-major storage (len == r*c)
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Field)(nil)

// New creates an r×c field filled with zeros.
// Returns ErrBadShape if rows <= 0 or cols <= 0.
// Complexity: O(r*c) time and memory.
func New(rows, cols int) (*Field, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadShape
	}

	return &Field{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewShape is New for a Shape value.
func NewShape(s Shape) (*Field, error) { return New(s.Rows, s.Cols) }

// Filled creates an r×c field with every cell set to v.
func Filled(rows, cols int, v float64) (*Field, error) {
	f, err := New(rows, cols)
	if err != nil {
		return nil, err
	}
	for i := range f.data {
		f.data[i] = v
	}

	return f, nil
}

// FromRows deep-copies a rectangular [][]float64 into a new field.
// Stage 1 (Validate): non-empty and rectangular.
// Stage 2 (Execute): copy row by row into the flat buffer.
func FromRows(rows [][]float64) (*Field, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrBadShape
	}
	w := len(rows[0])
	for _, row := range rows {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	f, _ := New(len(rows), w) // shape already validated
	for i, row := range rows {
		copy(f.data[i*w:(i+1)*w], row)
	}

	return f, nil
}

// FromData wraps a copy of a row-major buffer of length rows*cols.
func FromData(rows, cols int, data []float64) (*Field, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadShape
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("field: %d values for shape (%d,%d): %w", len(data), rows, cols, ErrShapeMismatch)
	}
	buf := make([]float64, len(data))
	copy(buf, data)

	return &Field{r: rows, c: cols, data: buf}, nil
}

// Rows returns the number of rows.
func (f *Field) Rows() int { return f.r }

// Cols returns the number of columns.
func (f *Field) Cols() int { return f.c }

// Shape returns the (rows, cols) pair.
func (f *Field) Shape() Shape { return Shape{Rows: f.r, Cols: f.c} }

// Data exposes the row-major backing slice. Writes are visible to the field.
func (f *Field) Data() []float64 { return f.data }

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
func (f *Field) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= f.r || col < 0 || col >= f.c {
		return 0, fieldErrorf(method, row, col, ErrOutOfRange)
	}

	return row*f.c + col, nil
}

// At retrieves the value at (row, col).
// Complexity: O(1).
func (f *Field) At(row, col int) (float64, error) {
	idx, err := f.indexOf(ctxAt, row, col)
	if err != nil {
		return 0, err
	}

	return f.data[idx], nil
}

// Set assigns v at (row, col).
// Complexity: O(1).
func (f *Field) Set(row, col int, v float64) error {
	idx, err := f.indexOf(ctxSet, row, col)
	if err != nil {
		return err
	}
	f.data[idx] = v

	return nil
}

// AtPoint is At for a Point.
func (f *Field) AtPoint(p Point) (float64, error) { return f.At(p.Row, p.Col) }

// Fill sets every cell to v.
func (f *Field) Fill(v float64) {
	for i := range f.data {
		f.data[i] = v
	}
}

// Clone returns a deep copy.
// Complexity: O(r*c) time and memory.
func (f *Field) Clone() *Field {
	buf := make([]float64, len(f.data))
	copy(buf, f.data)

	return &Field{r: f.r, c: f.c, data: buf}
}

// CopyFrom overwrites f with the contents of src; shapes must match.
func (f *Field) CopyFrom(src *Field) error {
	if err := SameShape(f, src); err != nil {
		return err
	}
	copy(f.data, src.data)

	return nil
}

// Row returns a copy of row i.
func (f *Field) Row(i int) ([]float64, error) {
	if i < 0 || i >= f.r {
		return nil, fieldErrorf("Row", i, 0, ErrOutOfRange)
	}
	out := make([]float64, f.c)
	copy(out, f.data[i*f.c:(i+1)*f.c])

	return out, nil
}

// ToRows materializes the field as [][]float64 (copy).
func (f *Field) ToRows() [][]float64 {
	out := make([][]float64, f.r)
	for i := range out {
		out[i] = make([]float64, f.c)
		copy(out[i], f.data[i*f.c:(i+1)*f.c])
	}

	return out
}

// Sum returns the total of all cells.
func (f *Field) Sum() float64 { return floats.Sum(f.data) }

// Min returns the smallest cell value.
func (f *Field) Min() float64 { return floats.Min(f.data) }

// Max returns the largest cell value.
func (f *Field) Max() float64 { return floats.Max(f.data) }

// Mean returns the arithmetic mean of all cells.
func (f *Field) Mean() float64 { return floats.Sum(f.data) / float64(len(f.data)) }

// SameShape returns ErrShapeMismatch (wrapped with both shapes) unless a and b agree.
func SameShape(a, b *Field) error {
	if a == nil || b == nil {
		return ErrNilField
	}
	if a.r != b.r || a.c != b.c {
		return fmt.Errorf("%v vs %v: %w", a.Shape(), b.Shape(), ErrShapeMismatch)
	}

	return nil
}

// String implements fmt.Stringer for easy debugging.
func (f *Field) String() string {
	var sb strings.Builder
	for i := 0; i < f.r; i++ {
		sb.WriteString("[")
		for j := 0; j < f.c; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", f.data[i*f.c+j])
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
