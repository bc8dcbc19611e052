// SPDX-License-Identifier: MIT

// Package profile stores the reference-point traces recorded by the diffusion
// simulator and compares traces with Dynamic Time Warping.
//
// A Profile is an N×R table: row t holds the values sampled at the R
// reference points after t+1 simulation steps. Trace(j) returns column j,
// the time series of one reference point.
//
// DTW measures how far apart two traces are when one may rise earlier or
// later than the other, e.g. the same reference point under two source
// geometries. It fills the classic (n+1)×(m+1) cost table with two rolling
// rows, optionally restricted to a Sakoe–Chiba band |i-j| ≤ Window, and
// charges SlopePenalty for every non-diagonal move.
//
// Complexity: DTW is O(n·m) time, O(m) memory.
package profile
