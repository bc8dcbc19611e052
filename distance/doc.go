// SPDX-License-Identifier: MIT

// Package distance computes exact Euclidean distance transforms of fields.
//
// EDT replaces every non-zero cell with its distance to the nearest zero
// cell (zero cells map to 0), matching scipy.ndimage.distance_transform_edt
// with unit sampling.
//
// Algorithm: separable lower-envelope-of-parabolas transform (Felzenszwalb &
// Huttenlocher), applied to columns and then rows on squared distances.
//
// Complexity: O(R·C) time, O(R·C + max(R,C)) memory.
package distance
