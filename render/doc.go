// SPDX-License-Identifier: MIT

// Package render draws the figures of the pipelines with gonum/plot.
//
//   - HeatMap: a field as a colored grid (row 0 on top) with an optional
//     color bar on the right and contour overlays.
//   - Profiles: one line per reference point of a profile.Profile.
//
// All figures are PNG files of an exact pixel size (72 DPI canvas, so one
// point is one pixel).
package render
