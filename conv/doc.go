// SPDX-License-Identifier: MIT

// Package conv provides same-size 2D convolution of scalar fields.
//
// What:
//
//   - Convolver is the small interface the diffusion simulator depends on:
//     Convolve(dst, src, k) writes src * k into dst, dst and src sharing a shape.
//   - Direct is the reference implementation: a true convolution (kernel
//     flipped) whose output window is aligned the way scipy's
//     convolve2d(mode="same") aligns it, i.e. the "full" result cropped from
//     offset (kh-1)/2, (kw-1)/2.
//
// Boundary handling:
//
//   - Fill: cells outside the field read as 0 (scipy's default).
//   - Edge: cells outside the field read the nearest edge cell.
//   - Wrap: the field is periodic; total mass is preserved exactly up to
//     rounding for any unit-sum kernel.
//
// Concurrency:
//
//   - Direct splits the output rows into contiguous bands and evaluates them
//     through an errgroup bounded by Workers. Each output cell is computed by
//     the same fixed-order loop regardless of banding, so results are
//     bit-identical for any worker count.
//
// Complexity: O(R·C·kh·kw) time, O(R·C) extra memory when dst aliases src.
package conv
