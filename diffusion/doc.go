// SPDX-License-Identifier: MIT

// Package diffusion runs the bounded diffusion-with-source simulation: a
// field is repeatedly convolved with a unit-sum kernel while a set of source
// cells is forced back to 1 after every step, modeling a constant emitter
// diffusing into the surrounding medium (explicit Euler with a Dirichlet
// source).
//
// The simulation samples a small set of reference points after each step and
// returns them as a profile.Profile. An optional OnStep hook receives every
// intermediate field, which the signature pipeline uses to write snapshots.
//
// Values stay real-valued. Nothing is clamped except the source cells, which
// are set to exactly 1.
package diffusion
