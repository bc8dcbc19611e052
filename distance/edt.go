// SPDX-License-Identifier: MIT

package distance

import (
	"errors"
	"math"

	"github.com/katalvlaran/difftrace/field"
)

// ErrNoBackground indicates a field without any zero cell; the transform is
// undefined there.
var ErrNoBackground = errors.New("distance: field has no zero cell")

// far stands in for +Inf so that envelope intersections stay finite.
const far = 1e20

// EDT returns the Euclidean distance of every cell of f to the nearest zero
// cell of f.
func EDT(f *field.Field) (*field.Field, error) {
	if f == nil {
		return nil, field.ErrNilField
	}
	rows, cols := f.Rows(), f.Cols()
	src := f.Data()

	out, err := field.New(rows, cols)
	if err != nil {
		return nil, err
	}
	sq := out.Data()
	background := false
	for i, v := range src {
		if v == 0 {
			background = true
			continue
		}
		sq[i] = far
	}
	if !background {
		return nil, ErrNoBackground
	}

	n := rows
	if cols > n {
		n = cols
	}
	line := make([]float64, n)
	res := make([]float64, n)
	env := newEnvelope(n)

	// Stage 1: columns
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			line[r] = sq[r*cols+c]
		}
		env.transform(line[:rows], res[:rows])
		for r := 0; r < rows; r++ {
			sq[r*cols+c] = res[r]
		}
	}

	// Stage 2: rows
	for r := 0; r < rows; r++ {
		row := sq[r*cols : (r+1)*cols]
		copy(line, row)
		env.transform(line[:cols], res[:cols])
		copy(row, res[:cols])
	}

	for i, v := range sq {
		sq[i] = math.Sqrt(v)
	}

	return out, nil
}

// envelope holds the scratch buffers of the 1D transform.
type envelope struct {
	v []int     // parabola vertices
	z []float64 // boundaries between parabolas
}

func newEnvelope(n int) *envelope {
	return &envelope{v: make([]int, n), z: make([]float64, n+1)}
}

// transform writes d[q] = min_p (q-p)² + f[p] into d.
func (e *envelope) transform(f, d []float64) {
	n := len(f)
	v, z := e.v, e.z
	k := 0
	v[0] = 0
	z[0] = math.Inf(-1)
	z[1] = math.Inf(1)
	for q := 1; q < n; q++ {
		s := e.meet(f, q, v[k])
		for s <= z[k] {
			k--
			s = e.meet(f, q, v[k])
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = math.Inf(1)
	}

	k = 0
	for q := 0; q < n; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		dq := float64(q - v[k])
		d[q] = dq*dq + f[v[k]]
	}
}

// meet returns the abscissa where the parabolas rooted at q and p intersect.
func (e *envelope) meet(f []float64, q, p int) float64 {
	fq, fp := float64(q), float64(p)
	return ((f[q] + fq*fq) - (f[p] + fp*fp)) / (2*fq - 2*fp)
}
