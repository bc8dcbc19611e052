// SPDX-License-Identifier: MIT

package render

import (
	"github.com/katalvlaran/difftrace/field"
	"gonum.org/v1/plot/plotter"
)

// Grid adapts a field to plotter.GridXYZ. Column c maps to x = c and row r
// to y = rows-1-r, so the first row is drawn on top.
type Grid struct {
	F *field.Field
}

var _ plotter.GridXYZ = Grid{}

// Dims returns (columns, rows).
func (g Grid) Dims() (c, r int) { return g.F.Cols(), g.F.Rows() }

// Z returns the value drawn at grid cell (c, r).
func (g Grid) Z(c, r int) float64 {
	return g.F.Data()[(g.F.Rows()-1-r)*g.F.Cols()+c]
}

// X returns the x coordinate of column c.
func (g Grid) X(c int) float64 { return float64(c) }

// Y returns the y coordinate of grid row r.
func (g Grid) Y(r int) float64 { return float64(r) }

// pointXY maps a field point to plot coordinates.
func pointXY(rows int, p field.Point) plotter.XY {
	return plotter.XY{X: float64(p.Col), Y: float64(rows - 1 - p.Row)}
}
