// SPDX-License-Identifier: MIT

package contour_test

import (
	"testing"

	"github.com/katalvlaran/difftrace/contour"
	"github.com/katalvlaran/difftrace/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// maskOf converts a 0/1 grid literal into a mask.
func maskOf(t *testing.T, grid [][]int) *field.Mask {
	t.Helper()
	rows := make([][]bool, len(grid))
	for i, r := range grid {
		rows[i] = make([]bool, len(r))
		for j, v := range r {
			rows[i][j] = v != 0
		}
	}
	m, err := field.MaskFromRows(rows)
	require.NoError(t, err)
	return m
}

func pts(rc ...[2]int) []field.Point {
	out := make([]field.Point, len(rc))
	for i, p := range rc {
		out[i] = field.Point{Row: p[0], Col: p[1]}
	}
	return out
}

// TestSuzuki_Square traces a filled 3×3 block inside a 5×5 mask.
//
//	0 0 0 0 0
//	0 1 1 1 0
//	0 1 1 1 0
//	0 1 1 1 0
//	0 0 0 0 0
func TestSuzuki_Square(t *testing.T) {
	m := maskOf(t, [][]int{
		{0, 0, 0, 0, 0},
		{0, 1, 1, 1, 0},
		{0, 1, 1, 1, 0},
		{0, 1, 1, 1, 0},
		{0, 0, 0, 0, 0},
	})

	raw, err := contour.Suzuki{Approx: contour.None}.Extract(m)
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.False(t, raw[0].Hole)
	assert.Equal(t, -1, raw[0].Parent)
	assert.Equal(t, pts(
		[2]int{1, 1}, [2]int{2, 1}, [2]int{3, 1}, [2]int{3, 2},
		[2]int{3, 3}, [2]int{2, 3}, [2]int{1, 3}, [2]int{1, 2},
	), raw[0].Points)

	simple, err := contour.Suzuki{Approx: contour.Simple}.Extract(m)
	require.NoError(t, err)
	require.Len(t, simple, 1)
	assert.Equal(t, pts([2]int{1, 1}, [2]int{3, 1}, [2]int{3, 3}, [2]int{1, 3}), simple[0].Points)
}

// TestSuzuki_RingHasHole: a one-cell hole yields an outer and a hole border,
// the hole parented to the outer border.
func TestSuzuki_RingHasHole(t *testing.T) {
	m := maskOf(t, [][]int{
		{1, 1, 1},
		{1, 0, 1},
		{1, 1, 1},
	})
	cs, err := contour.Suzuki{Approx: contour.Simple}.Extract(m)
	require.NoError(t, err)
	require.Len(t, cs, 2)

	assert.False(t, cs[0].Hole)
	assert.Equal(t, -1, cs[0].Parent)
	assert.Len(t, cs[0].Points, 4)

	assert.True(t, cs[1].Hole)
	assert.Equal(t, 0, cs[1].Parent)
	assert.Equal(t, pts([2]int{1, 0}, [2]int{0, 1}, [2]int{1, 2}, [2]int{2, 1}), cs[1].Points)
}

// TestSuzuki_Nested: an island inside a lake inside a ring.
func TestSuzuki_Nested(t *testing.T) {
	m := maskOf(t, [][]int{
		{1, 1, 1, 1, 1, 1, 1},
		{1, 0, 0, 0, 0, 0, 1},
		{1, 0, 0, 0, 0, 0, 1},
		{1, 0, 0, 1, 0, 0, 1},
		{1, 0, 0, 0, 0, 0, 1},
		{1, 0, 0, 0, 0, 0, 1},
		{1, 1, 1, 1, 1, 1, 1},
	})
	cs, err := contour.Suzuki{}.Extract(m)
	require.NoError(t, err)
	require.Len(t, cs, 3)

	assert.False(t, cs[0].Hole)
	assert.Equal(t, -1, cs[0].Parent)
	assert.True(t, cs[1].Hole)
	assert.Equal(t, 0, cs[1].Parent)
	assert.False(t, cs[2].Hole)
	assert.Equal(t, 1, cs[2].Parent)
	assert.Equal(t, pts([2]int{3, 3}), cs[2].Points)
	assert.Len(t, cs[0].Points, 24)
}

// TestSuzuki_SeparateBlobs: two top-level outer borders, a lone pixel included.
func TestSuzuki_SeparateBlobs(t *testing.T) {
	m := maskOf(t, [][]int{
		{1, 1, 0, 0},
		{1, 1, 0, 1},
	})
	cs, err := contour.Suzuki{Approx: contour.Simple}.Extract(m)
	require.NoError(t, err)
	require.Len(t, cs, 2)
	for _, c := range cs {
		assert.False(t, c.Hole)
		assert.Equal(t, -1, c.Parent)
	}
	assert.Equal(t, pts([2]int{1, 3}), cs[1].Points)
}

func TestSuzuki_EmptyAndNil(t *testing.T) {
	m, _ := field.NewMask(3, 3)
	cs, err := contour.Suzuki{}.Extract(m)
	require.NoError(t, err)
	assert.Empty(t, cs)

	_, err = contour.Suzuki{}.Extract(nil)
	require.ErrorIs(t, err, contour.ErrNilMask)
}

// TestComponents mirrors the island counting of a 4×3 grid.
//
//	0 1 1 0
//	1 1 0 0
//	0 0 1 1
func TestComponents(t *testing.T) {
	m := maskOf(t, [][]int{
		{0, 1, 1, 0},
		{1, 1, 0, 0},
		{0, 0, 1, 1},
	})
	c4, err := contour.Components(m, contour.Conn4)
	require.NoError(t, err)
	require.Len(t, c4, 2)
	assert.Len(t, c4[0], 4)
	assert.Len(t, c4[1], 2)

	// The diagonal touch at (1,1)-(2,2) merges everything under Conn8.
	c8, err := contour.Components(m, contour.Conn8)
	require.NoError(t, err)
	require.Len(t, c8, 1)
	assert.Len(t, c8[0], 6)

	_, err = contour.Components(nil, contour.Conn4)
	require.ErrorIs(t, err, contour.ErrNilMask)
}
