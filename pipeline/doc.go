// SPDX-License-Identifier: MIT

// Package pipeline wires the library packages into the runs behind the
// difftrace subcommands.
//
// Runs:
//
//   - RunThreshold     - threshold-time map of a field stack, with the region
//     border overlaid and an optional distance-transform figure.
//   - RunSignatures    - diffusion-with-source over the two article scenarios,
//     reference-point profiles and their DTW comparison.
//   - RunStack         - field stack generated by Gaussian blurs of a mask.
//   - RunDistTransform - distance-transform figure of one field or mask.
//
// Every run takes a validated config, a Logger and the run's manifest; it
// lists each file it writes in the manifest and stores summary metrics
// there. Writing the manifest itself is left to the caller.
//
// Errors:
//
//   - ErrNoOutDir, ErrNoInput   - missing required paths.
//   - ErrBadSize, ErrBadSteps   - non-positive geometry or step counts.
//   - ErrRegionShape            - mask shape differs from the stack shape.
//   - threshold.ErrEmptyStack   - empty stack with no mask to size the map.
package pipeline
