// SPDX-License-Identifier: MIT

package conv

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/katalvlaran/difftrace/field"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrKernelTooLarge indicates a kernel wider or taller than the field.
	ErrKernelTooLarge = errors.New("conv: kernel larger than field")

	// ErrBadBoundary indicates an unknown Boundary value.
	ErrBadBoundary = errors.New("conv: unknown boundary mode")
)

// Boundary selects how cells outside the field are read.
type Boundary int

const (
	// Fill reads outside cells as zero.
	Fill Boundary = iota
	// Edge replicates the nearest edge cell.
	Edge
	// Wrap treats the field as periodic in both axes.
	Wrap
)

// String returns the flag spelling of b.
func (b Boundary) String() string {
	switch b {
	case Fill:
		return "fill"
	case Edge:
		return "edge"
	case Wrap:
		return "wrap"
	}

	return fmt.Sprintf("Boundary(%d)", int(b))
}

// MarshalText encodes b by its flag spelling.
func (b Boundary) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// ParseBoundary maps "fill", "edge" or "wrap" to a Boundary.
func ParseBoundary(s string) (Boundary, error) {
	switch s {
	case "fill", "":
		return Fill, nil
	case "edge":
		return Edge, nil
	case "wrap":
		return Wrap, nil
	}

	return Fill, fmt.Errorf("%q: %w", s, ErrBadBoundary)
}

// Convolver computes a same-size 2D convolution.
type Convolver interface {
	// Convolve writes src * k into dst. dst and src must share a shape and
	// may be the same field.
	Convolve(dst, src, k *field.Field) error
}

// Direct is a straightforward spatial-domain Convolver.
type Direct struct {
	// Boundary selects the out-of-field read rule.
	Boundary Boundary
	// Workers bounds the number of concurrent row bands; <= 0 means GOMAXPROCS.
	Workers int
}

var _ Convolver = Direct{}

// CheckKernel returns ErrKernelTooLarge when k does not fit inside s.
func CheckKernel(s field.Shape, k *field.Field) error {
	if k == nil {
		return field.ErrNilField
	}
	if k.Rows() > s.Rows || k.Cols() > s.Cols {
		return fmt.Errorf("kernel %v, field %v: %w", k.Shape(), s, ErrKernelTooLarge)
	}

	return nil
}

// Convolve implements Convolver.
// Stage 1 (Validate): shapes, kernel fit, boundary mode.
// Stage 2 (Prepare): detach src from dst when they alias.
// Stage 3 (Execute): evaluate row bands concurrently.
func (d Direct) Convolve(dst, src, k *field.Field) error {
	if err := field.SameShape(dst, src); err != nil {
		return fmt.Errorf("conv: dst/src: %w", err)
	}
	if err := CheckKernel(src.Shape(), k); err != nil {
		return err
	}
	if d.Boundary < Fill || d.Boundary > Wrap {
		return fmt.Errorf("%v: %w", d.Boundary, ErrBadBoundary)
	}
	in := src
	if dst == src {
		in = src.Clone()
	}

	rows := src.Rows()
	workers := d.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, rows)
	chunk := (rows + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < rows; start += chunk {
		start, end := start, min(start+chunk, rows)
		g.Go(func() error {
			d.band(dst, in, k, start, end)
			return nil
		})
	}

	return g.Wait()
}

// band fills output rows [start, end).
func (d Direct) band(dst, src, k *field.Field, start, end int) {
	rows, cols := src.Rows(), src.Cols()
	kh, kw := k.Rows(), k.Cols()
	offR, offC := (kh-1)/2, (kw-1)/2
	in, kd, out := src.Data(), k.Data(), dst.Data()

	for i := start; i < end; i++ {
		for j := 0; j < cols; j++ {
			var s float64
			for a := 0; a < kh; a++ {
				r, ok := d.resolve(i+offR-a, rows)
				if !ok {
					continue
				}
				inRow := in[r*cols : (r+1)*cols]
				kRow := kd[a*kw : (a+1)*kw]
				for b := 0; b < kw; b++ {
					c, ok := d.resolve(j+offC-b, cols)
					if !ok {
						continue
					}
					s += kRow[b] * inRow[c]
				}
			}
			out[i*cols+j] = s
		}
	}
}

// resolve maps a possibly out-of-range coordinate onto [0, n) according to
// the boundary mode. ok is false when the cell reads as zero.
func (d Direct) resolve(x, n int) (int, bool) {
	if x >= 0 && x < n {
		return x, true
	}
	switch d.Boundary {
	case Edge:
		if x < 0 {
			return 0, true
		}
		return n - 1, true
	case Wrap:
		x %= n
		if x < 0 {
			x += n
		}
		return x, true
	}

	return 0, false
}
