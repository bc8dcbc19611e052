// SPDX-License-Identifier: MIT

package contour

import "github.com/katalvlaran/difftrace/field"

// Components finds all contiguous regions of true cells of m according to
// conn. Each component lists its cells in BFS order; components appear in
// raster order of their first cell.
//
// Time:   O(R·C·d), where d = 4 or 8.
// Memory: O(R·C) for visited flags and output.
func Components(m *field.Mask, conn Connectivity) ([][]field.Point, error) {
	if m == nil {
		return nil, ErrNilMask
	}
	rows, cols := m.Rows(), m.Cols()
	bits := m.Bits()
	seen := make([]bool, len(bits))
	offsets := conn.offsets()
	var comps [][]field.Point

	for i0, on := range bits {
		if !on || seen[i0] {
			continue
		}
		// BFS to collect component
		queue := []int{i0}
		seen[i0] = true
		var comp []field.Point

		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			ur, uc := u/cols, u%cols
			comp = append(comp, field.Point{Row: ur, Col: uc})
			for _, d := range offsets {
				vr, vc := ur+d[0], uc+d[1]
				if vr < 0 || vr >= rows || vc < 0 || vc >= cols {
					continue
				}
				v := vr*cols + vc
				if bits[v] && !seen[v] {
					seen[v] = true
					queue = append(queue, v)
				}
			}
		}
		comps = append(comps, comp)
	}

	return comps, nil
}
