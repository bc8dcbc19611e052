// SPDX-License-Identifier: MIT

// Package field holds the in-memory raster types shared by every pipeline:
// scalar fields, boolean masks, shapes and grid points.
//
// What:
//
//   - Field is a row-major float64 grid with bounds-checked At/Set and a flat
//     Data() buffer for hot loops (convolution, scans).
//   - Mask is a boolean grid of the same layout; it marks a region of interest
//     (urban area) or the source cells held at a fixed value.
//   - Shape and Point carry dimensions and (row, col) coordinates.
//
// Determinism:
//
//   - All reductions walk the buffer in row-major order.
//   - Constructors deep-copy their inputs; a Field never aliases caller slices.
//
// Complexity:
//
//   - New/NewMask: O(r*c) zero-init; At/Set: O(1); Clone, Sum, Min, Max: O(r*c).
//
// Errors:
//
//   - ErrBadShape: non-positive dimensions.
//   - ErrNonRectangular: ragged [][]float64 / [][]bool input.
//   - ErrOutOfRange: index outside the grid.
//   - ErrShapeMismatch: two grids that must agree do not.
package field
