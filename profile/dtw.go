// SPDX-License-Identifier: MIT

package profile

import "math"

// Options configures DTW.
//
// Fields:
//   - Window       - maximum deviation |i-j| (Sakoe–Chiba band); -1 disables it.
//   - SlopePenalty - extra cost added to insertion/deletion moves.
type Options struct {
	Window       int
	SlopePenalty float64
}

// DefaultOptions returns an unconstrained, penalty-free configuration.
func DefaultOptions() Options {
	return Options{Window: -1}
}

// DTW computes the Dynamic Time Warping distance between a and b.
//
// Algorithm:
//  1. D[0][0] = 0, D[i][0] = D[0][j] = +∞.
//  2. D[i][j] = |a[i-1]-b[j-1]| + min(D[i-1][j]+p, D[i][j-1]+p, D[i-1][j-1]),
//     cells outside the window are +∞.
//  3. distance = D[n][m] (+∞ when the window makes the end unreachable).
func DTW(a, b []float64, opts Options) (float64, error) {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return 0, ErrEmptySequence
	}
	if opts.Window < -1 {
		return 0, ErrBadWindow
	}
	window := opts.Window
	if window < 0 {
		window = math.MaxInt32
	}
	penalty := opts.SlopePenalty
	inf := math.Inf(1)

	prev := make([]float64, m+1)
	curr := make([]float64, m+1)
	for j := 1; j <= m; j++ {
		prev[j] = inf
	}

	for i := 1; i <= n; i++ {
		curr[0] = inf
		for j := 1; j <= m; j++ {
			if abs(i-j) > window {
				curr[j] = inf
				continue
			}
			cost := math.Abs(a[i-1] - b[j-1])
			curr[j] = cost + min(prev[j]+penalty, curr[j-1]+penalty, prev[j-1])
		}
		prev, curr = curr, prev
	}

	return prev[m], nil
}

// abs returns the absolute value of an int.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
