// SPDX-License-Identifier: MIT

// Package contour extracts region boundaries and connected components from
// boolean masks. Boundaries are used as overlays on rendered maps (the urban
// border drawn over the threshold-time map); they play no part in the
// numerical pipelines.
//
// What:
//
//   - Suzuki implements the Suzuki–Abe border following algorithm with a
//     full hierarchy: every outer border and every hole border is reported,
//     with the index of its parent contour (-1 for top level).
//   - Approx selects raw borders (None) or borders whose straight horizontal,
//     vertical and diagonal runs are compressed to their end points (Simple).
//   - Components labels 4- or 8-connected regions of true cells.
//
// Coordinates are field.Point values (row, col) in the mask's frame.
//
// Complexity: O(R·C) time and memory for both Extract and Components.
package contour
