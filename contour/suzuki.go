// SPDX-License-Identifier: MIT

package contour

import "github.com/katalvlaran/difftrace/field"

// Suzuki is the border following Extractor (8-connected foreground).
type Suzuki struct {
	Approx Approx
}

var _ Extractor = Suzuki{}

// Extract traces every outer and hole border of m.
//
// Behavior:
//  1. Copy m into a zero-framed label image (1 = foreground).
//  2. Raster scan; a border starts at a 1-cell with a 0 on its left (outer)
//     or at a labeled cell with a 0 on its right (hole).
//  3. The parent is derived from the last border met on the row (LNBD):
//     same kind → that border's parent, different kind → that border.
//  4. Follow the border, labeling cells with ±NBD.
func (s Suzuki) Extract(m *field.Mask) ([]Contour, error) {
	if m == nil {
		return nil, ErrNilMask
	}
	rows, cols := m.Rows(), m.Cols()
	w := cols + 2
	img := make([]int, (rows+2)*w)
	for i, b := range m.Bits() {
		if b {
			img[(i/cols+1)*w+i%cols+1] = 1
		}
	}
	tr := tracer{img: img, w: w}
	tr.off = [8]int{1, w + 1, w, w - 1, -1, -w - 1, -w, -w + 1}

	// Border NBD=1 is the frame, a hole border with no parent.
	holes := []bool{true}
	parents := []int{0}
	var out []Contour
	nbd := 1

	for i := 1; i <= rows; i++ {
		lnbd := 1
		for j := 1; j <= cols; j++ {
			p := i*w + j
			v := img[p]
			if v == 0 {
				continue
			}
			outer := v == 1 && img[p-1] == 0
			hole := !outer && v >= 1 && img[p+1] == 0
			if outer || hole {
				nbd++
				from := p - 1
				if hole {
					from = p + 1
					if v > 1 {
						lnbd = v
					}
				}
				parent := lnbd
				if hole == holes[lnbd-1] {
					parent = parents[lnbd-1]
				}
				holes = append(holes, hole)
				parents = append(parents, parent)

				pts := tr.follow(p, from, nbd)
				c := Contour{Points: make([]field.Point, len(pts)), Hole: hole, Parent: parent - 2}
				if parent <= 1 {
					c.Parent = -1
				}
				for k, q := range pts {
					c.Points[k] = field.Point{Row: q/w - 1, Col: q%w - 1}
				}
				if s.Approx == Simple {
					c.Points = simplify(c.Points)
				}
				out = append(out, c)
			}
			if a := img[p]; a != 1 {
				lnbd = abs(a)
			}
		}
	}

	return out, nil
}

// tracer holds the label image and the clockwise neighbor offsets
// E, SE, S, SW, W, NW, N, NE (screen orientation, rows grow downward).
type tracer struct {
	img []int
	w   int
	off [8]int
}

// dir returns the index of the neighbor offset d.
func (t *tracer) dir(d int) int {
	for k, o := range t.off {
		if o == d {
			return k
		}
	}

	return 0
}

// follow traces the border starting at p, entered from neighbor from, and
// returns the visited cells in order.
func (t *tracer) follow(p, from, nbd int) []int {
	img := t.img
	start := t.dir(from - p)
	i1 := -1
	for k := 0; k < 8; k++ {
		q := p + t.off[(start+k)%8]
		if img[q] != 0 {
			i1 = q
			break
		}
	}
	if i1 < 0 {
		img[p] = -nbd
		return []int{p}
	}

	var pts []int
	i2, i3 := i1, p
	for {
		pts = append(pts, i3)
		d := t.dir(i2 - i3)
		eastZero := false
		i4 := i2
		for k := 1; k <= 8; k++ {
			dd := (d - k + 8) % 8
			q := i3 + t.off[dd]
			if img[q] != 0 {
				i4 = q
				break
			}
			if dd == 0 {
				eastZero = true
			}
		}
		if eastZero {
			img[i3] = -nbd
		} else if img[i3] == 1 {
			img[i3] = nbd
		}
		if i4 == p && i3 == i1 {
			return pts
		}
		i2, i3 = i3, i4
	}
}

// simplify drops every point whose incoming and outgoing steps are equal.
func simplify(pts []field.Point) []field.Point {
	n := len(pts)
	if n < 3 {
		return pts
	}
	out := make([]field.Point, 0, n)
	for k, cur := range pts {
		prev, next := pts[(k+n-1)%n], pts[(k+1)%n]
		if cur.Row-prev.Row == next.Row-cur.Row && cur.Col-prev.Col == next.Col-cur.Col {
			continue
		}
		out = append(out, cur)
	}

	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
