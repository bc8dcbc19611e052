// SPDX-License-Identifier: MIT

package profile

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/difftrace/field"
)

var (
	// ErrEmptySequence indicates one or both DTW inputs are empty.
	ErrEmptySequence = errors.New("profile: input sequences must be non-empty")

	// ErrBadWindow indicates a DTW window below -1.
	ErrBadWindow = errors.New("profile: window must be >= -1")

	// ErrPointIndex indicates a reference point index out of range.
	ErrPointIndex = errors.New("profile: reference point index out of range")
)

// Profile is the N×R table of values sampled at reference points.
type Profile struct {
	Points []field.Point // reference coordinates, one per column
	Values [][]float64   // Values[t][j]: point j after t+1 steps
}

// New allocates an all-zero profile for steps rows and the given points.
func New(steps int, points []field.Point) *Profile {
	vals := make([][]float64, steps)
	for t := range vals {
		vals[t] = make([]float64, len(points))
	}
	pts := make([]field.Point, len(points))
	copy(pts, points)

	return &Profile{Points: pts, Values: vals}
}

// Steps returns the number of rows.
func (p *Profile) Steps() int { return len(p.Values) }

// Sample records f at every reference point into row t. Points are assumed
// validated against f's shape by the caller.
func (p *Profile) Sample(t int, f *field.Field) {
	s := f.Shape()
	data := f.Data()
	for j, pt := range p.Points {
		p.Values[t][j] = data[s.Index(pt)]
	}
}

// Trace returns a copy of column j.
func (p *Profile) Trace(j int) ([]float64, error) {
	if j < 0 || j >= len(p.Points) {
		return nil, fmt.Errorf("trace %d of %d: %w", j, len(p.Points), ErrPointIndex)
	}
	out := make([]float64, len(p.Values))
	for t, row := range p.Values {
		out[t] = row[j]
	}

	return out, nil
}
