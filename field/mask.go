// SPDX-License-Identifier: MIT

package field

import "fmt"

// Mask is a boolean grid with the same row-major layout as Field.
// A true cell is inside the region (urban area, source, ...).
type Mask struct {
	r, c int
	bits []bool
}

// NewMask creates an all-false mask.
func NewMask(rows, cols int) (*Mask, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadShape
	}

	return &Mask{r: rows, c: cols, bits: make([]bool, rows*cols)}, nil
}

// FullMask returns a mask covering the whole grid. It is the region used when
// no mask file is supplied.
func FullMask(s Shape) (*Mask, error) {
	m, err := NewMask(s.Rows, s.Cols)
	if err != nil {
		return nil, err
	}
	for i := range m.bits {
		m.bits[i] = true
	}

	return m, nil
}

// MaskFromRows deep-copies a rectangular [][]bool.
func MaskFromRows(rows [][]bool) (*Mask, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrBadShape
	}
	w := len(rows[0])
	m, _ := NewMask(len(rows), w)
	for i, row := range rows {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
		copy(m.bits[i*w:(i+1)*w], row)
	}

	return m, nil
}

// MaskWhere builds a mask of the cells of f for which keep returns true.
func MaskWhere(f *Field, keep func(v float64) bool) *Mask {
	m := &Mask{r: f.r, c: f.c, bits: make([]bool, len(f.data))}
	for i, v := range f.data {
		m.bits[i] = keep(v)
	}

	return m
}

// MaskWhereEqual marks the cells of f equal to v.
func MaskWhereEqual(f *Field, v float64) *Mask {
	return MaskWhere(f, func(x float64) bool { return x == v })
}

// Rows returns the number of rows.
func (m *Mask) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Mask) Cols() int { return m.c }

// Shape returns the (rows, cols) pair.
func (m *Mask) Shape() Shape { return Shape{Rows: m.r, Cols: m.c} }

// Bits exposes the row-major backing slice.
func (m *Mask) Bits() []bool { return m.bits }

// At reports whether (row, col) is inside the region.
func (m *Mask) At(row, col int) (bool, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return false, fmt.Errorf("Mask.At(%d,%d): %w", row, col, ErrOutOfRange)
	}

	return m.bits[row*m.c+col], nil
}

// Set marks or clears (row, col).
func (m *Mask) Set(row, col int, v bool) error {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return fmt.Errorf("Mask.Set(%d,%d): %w", row, col, ErrOutOfRange)
	}
	m.bits[row*m.c+col] = v

	return nil
}

// Count returns the number of true cells.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}

	return n
}

// Points lists the true cells in row-major order.
func (m *Mask) Points() []Point {
	out := make([]Point, 0, m.Count())
	for i, b := range m.bits {
		if b {
			out = append(out, Point{Row: i / m.c, Col: i % m.c})
		}
	}

	return out
}

// ToField converts the mask to 0/1 values.
func (m *Mask) ToField() *Field {
	f := &Field{r: m.r, c: m.c, data: make([]float64, len(m.bits))}
	for i, b := range m.bits {
		if b {
			f.data[i] = 1
		}
	}

	return f
}

// CheckShape returns ErrShapeMismatch unless the mask matches s.
func (m *Mask) CheckShape(s Shape) error {
	if m == nil {
		return ErrNilField
	}
	if m.r != s.Rows || m.c != s.Cols {
		return fmt.Errorf("mask %v vs field %v: %w", m.Shape(), s, ErrShapeMismatch)
	}

	return nil
}
