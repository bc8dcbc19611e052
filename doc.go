// SPDX-License-Identifier: MIT

// Package difftrace analyzes diffusion over 2D raster fields: when does
// each cell of a field stack reach a threshold, and how do reference cells
// respond when a source region keeps emitting?
//
// What is in the box?
//
//	field/      - Field (dense float64 grid), Mask, Shape and Point
//	kernel/     - Gaussian and uniform convolution kernels
//	conv/       - same-size 2D convolution with fill, edge or wrap borders
//	diffusion/  - diffuse-with-source simulation sampled at reference points
//	profile/    - reference-point profiles and their DTW distance
//	threshold/  - threshold-time (rank) maps over field stacks
//	distance/   - exact Euclidean distance transform
//	contour/    - border following and connected components of masks
//	rasterio/   - .npy / .npy.zst stacks, mask images, PNG snapshots
//	render/     - heat maps, color bars and line plots (gonum/plot)
//	manifest/   - README.yaml run manifests
//	pipeline/   - the runs behind the CLI
//	cmd/difftrace - the CLI
//
// Quick example:
//
//	difftrace stack --mask urban.png --outdir /tmp/stack --stds 20
//	difftrace threshold --hdfdir /tmp/stack --outdir /tmp/out --urbanmask urban.png --minpix 0.5
//	difftrace signatures --outdir /tmp/sig
package difftrace
