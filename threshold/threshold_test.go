// SPDX-License-Identifier: MIT

package threshold_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/difftrace/field"
	"github.com/katalvlaran/difftrace/threshold"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRows(t *testing.T, rows [][]float64) *field.Field {
	t.Helper()
	f, err := field.FromRows(rows)
	require.NoError(t, err)
	return f
}

// TestScan_ThreeStepOverwrite pins the descending overwrite order:
// step 2 (i=0, k=3) marks every cell, step 1 (i=1, k=2) overwrites [0][0],
// step 0 (i=2, k=1) marks nothing.
func TestScan_ThreeStepOverwrite(t *testing.T) {
	stack := threshold.Frames{
		{Step: 0, Field: mustRows(t, [][]float64{{0, 0}, {0, 0}})},
		{Step: 1, Field: mustRows(t, [][]float64{{5, 0}, {0, 0}})},
		{Step: 2, Field: mustRows(t, [][]float64{{5, 5}, {5, 5}})},
	}
	rank, err := threshold.Scan(stack, field.Shape{Rows: 2, Cols: 2}, 5)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2, 3}, {3, 3}}, rank.ToRows())
}

// TestScan_MonotoneRecoversCrossing builds stacks where each cell switches on
// at a known position p and stays on; the rank must be p+1, and cells that
// never switch on keep the sentinel.
func TestScan_MonotoneRecoversCrossing(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const rows, cols, n = 6, 5, 7
	crossing := make([]int, rows*cols) // n means "never"
	for i := range crossing {
		crossing[i] = rng.Intn(n + 1)
	}

	stack := make(threshold.Frames, n)
	for s := 0; s < n; s++ {
		f, _ := field.New(rows, cols)
		for i, p := range crossing {
			// Monotone ramp: below 1 before p, at or above 1 from p on.
			if s >= p {
				f.Data()[i] = 1 + 0.1*float64(s-p)
			} else {
				f.Data()[i] = 0.9 * float64(s+1) / float64(p+1)
			}
		}
		stack[s] = threshold.Frame{Step: 10 * (s + 1), Field: f}
	}

	rank, err := threshold.Scan(stack, field.Shape{Rows: rows, Cols: cols}, 1)
	require.NoError(t, err)
	for i, p := range crossing {
		want := float64(p + 1)
		if p == n {
			want = threshold.Sentinel
		}
		assert.Equal(t, want, rank.Data()[i], "cell %d crossing %d", i, p)
	}
}

// TestScan_SentinelKept: a cell below minval everywhere keeps the sentinel.
func TestScan_SentinelKept(t *testing.T) {
	stack := threshold.Frames{
		{Step: 1, Field: mustRows(t, [][]float64{{0.1, 0.9}})},
		{Step: 2, Field: mustRows(t, [][]float64{{0.2, 1.0}})},
	}
	rank, err := threshold.Scan(stack, field.Shape{Rows: 1, Cols: 2}, 0.5)
	require.NoError(t, err)
	assert.Equal(t, []float64{threshold.Sentinel, 1}, rank.Data())
}

// TestScan_UnsortedInput: Scan orders by step, not by position.
func TestScan_UnsortedInput(t *testing.T) {
	stack := threshold.Frames{
		{Step: 2, Field: mustRows(t, [][]float64{{5, 5}})},
		{Step: 0, Field: mustRows(t, [][]float64{{0, 0}})},
		{Step: 1, Field: mustRows(t, [][]float64{{5, 0}})},
	}
	rank, err := threshold.Scan(stack, field.Shape{Rows: 1, Cols: 2}, 5)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3}, rank.Data())
}

// TestScan_EmptyStack is a no-op producing an all-sentinel map.
func TestScan_EmptyStack(t *testing.T) {
	rank, err := threshold.Scan(threshold.Frames{}, field.Shape{Rows: 2, Cols: 3}, 1)
	require.NoError(t, err)
	for _, v := range rank.Data() {
		assert.Equal(t, threshold.Sentinel, v)
	}
}

func TestScan_ShapeMismatch(t *testing.T) {
	stack := threshold.Frames{
		{Step: 0, Field: mustRows(t, [][]float64{{1, 1}})},
		{Step: 1, Field: mustRows(t, [][]float64{{1}, {1}})},
	}
	_, err := threshold.Scan(stack, field.Shape{Rows: 1, Cols: 2}, 1)
	require.ErrorIs(t, err, threshold.ErrShapeMismatch)
	assert.Contains(t, err.Error(), "step 1")
}

// TestAutoThreshold: the derived minimum equals the minimum of the last field
// and a scan with it leaves no sentinel behind.
func TestAutoThreshold(t *testing.T) {
	stack := threshold.Frames{
		{Step: 0, Field: mustRows(t, [][]float64{{0.0, 0.1}, {0.0, 0.3}})},
		{Step: 5, Field: mustRows(t, [][]float64{{0.2, 0.4}, {0.1, 0.5}})},
		{Step: 9, Field: mustRows(t, [][]float64{{0.4, 0.6}, {0.35, 0.8}})},
	}
	minval, auto, err := threshold.Resolve(stack, -1)
	require.NoError(t, err)
	assert.True(t, auto)
	assert.Equal(t, 0.35, minval)

	rank, err := threshold.Scan(stack, field.Shape{Rows: 2, Cols: 2}, minval)
	require.NoError(t, err)
	for _, v := range rank.Data() {
		assert.NotEqual(t, threshold.Sentinel, v)
	}
	assert.Equal(t, [][]float64{{3, 2}, {3, 2}}, rank.ToRows())

	fixed, auto, err := threshold.Resolve(stack, 0.25)
	require.NoError(t, err)
	assert.False(t, auto)
	assert.Equal(t, 0.25, fixed)

	_, err = threshold.AutoMin(threshold.Frames{})
	require.ErrorIs(t, err, threshold.ErrEmptyStack)
}

func TestMeasure(t *testing.T) {
	rank := mustRows(t, [][]float64{
		{1, 2, threshold.Sentinel},
		{2, threshold.Sentinel, 3},
	})
	region, _ := field.MaskFromRows([][]bool{
		{true, true, true},
		{false, true, true},
	})
	cov, err := threshold.Measure(rank, region)
	require.NoError(t, err)
	assert.Equal(t, 5, cov.Region)
	assert.Equal(t, 3, cov.Reached)
	assert.Equal(t, 2, cov.Never)
	assert.Equal(t, map[int]int{1: 1, 2: 1, 3: 1}, cov.ByRank)

	small, _ := field.NewMask(1, 1)
	_, err = threshold.Measure(rank, small)
	require.ErrorIs(t, err, field.ErrShapeMismatch)
}
