// SPDX-License-Identifier: MIT

// Package kernel builds the 2D convolution kernels used by the diffusion
// simulator.
//
// What:
//
//   - GaussianWindow: the 1D Gaussian window of a given diameter and standard
//     deviation, w[n] = exp(-(n-(M-1)/2)² / (2σ²)), unnormalized, peak 1 for odd M.
//   - Gaussian2D: the outer product of the window with itself, divided by its
//     sum so that the kernel carries unit mass.
//   - Uniform: a diam×diam box kernel with unit mass.
//
// Every returned kernel sums to 1 within floating-point tolerance, so a
// convolution preserves total mass up to boundary effects.
package kernel
