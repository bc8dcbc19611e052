// SPDX-License-Identifier: MIT

package diffusion

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/difftrace/conv"
	"github.com/katalvlaran/difftrace/field"
	"github.com/katalvlaran/difftrace/profile"
)

// SourceValue is the value every source cell is forced to after each step.
const SourceValue = 1.0

var (
	// ErrRefPointOutOfBounds indicates a reference point outside the field.
	ErrRefPointOutOfBounds = errors.New("diffusion: reference point outside field")

	// ErrBadSteps indicates a negative step count.
	ErrBadSteps = errors.New("diffusion: steps must be >= 0")
)

// Config parameterizes Simulate.
type Config struct {
	// Steps is the number of convolve-then-force iterations.
	Steps int
	// Sources marks the cells held at SourceValue. Nil means SourcesOf(init).
	Sources *field.Mask
	// RefPoints are sampled after every step, one profile column each.
	RefPoints []field.Point
	// Convolver defaults to conv.Direct{Boundary: conv.Fill}.
	Convolver conv.Convolver
	// OnStep, when set, is called with the zero-based step index and the
	// field after forcing. The field is reused by the next step; copy it to
	// keep it.
	OnStep func(step int, f *field.Field) error
}

// SourcesOf returns the cells of init equal to SourceValue.
func SourcesOf(init *field.Field) *field.Mask {
	return field.MaskWhereEqual(init, SourceValue)
}

// Simulate evolves init under kernel k and returns the reference profile.
// init is not modified.
//
// Stage 1 (Validate): steps, kernel fit, source mask shape, reference points.
// Stage 2 (Execute): per step convolve, force sources, sample, hook.
//
// Complexity: O(Steps · R·C·kh·kw) with conv.Direct.
func Simulate(init, k *field.Field, cfg Config) (*profile.Profile, error) {
	if init == nil || k == nil {
		return nil, field.ErrNilField
	}
	if cfg.Steps < 0 {
		return nil, fmt.Errorf("steps %d: %w", cfg.Steps, ErrBadSteps)
	}
	shape := init.Shape()
	if err := conv.CheckKernel(shape, k); err != nil {
		return nil, err
	}
	sources := cfg.Sources
	if sources == nil {
		sources = SourcesOf(init)
	}
	if err := sources.CheckShape(shape); err != nil {
		return nil, fmt.Errorf("diffusion: sources: %w", err)
	}
	for i, p := range cfg.RefPoints {
		if !shape.Contains(p) {
			return nil, fmt.Errorf("reference point #%d %v in field %v: %w", i, p, shape, ErrRefPointOutOfBounds)
		}
	}
	cv := cfg.Convolver
	if cv == nil {
		cv = conv.Direct{Boundary: conv.Fill}
	}

	cur := init.Clone()
	next, _ := field.NewShape(shape)
	srcIdx := sourceIndices(sources)
	prof := profile.New(cfg.Steps, cfg.RefPoints)

	for step := 0; step < cfg.Steps; step++ {
		if err := cv.Convolve(next, cur, k); err != nil {
			return nil, fmt.Errorf("diffusion: step %d: %w", step, err)
		}
		force(next, srcIdx)
		cur, next = next, cur
		prof.Sample(step, cur)
		if cfg.OnStep != nil {
			if err := cfg.OnStep(step, cur); err != nil {
				return nil, fmt.Errorf("diffusion: step %d hook: %w", step, err)
			}
		}
	}

	return prof, nil
}

// sourceIndices flattens the mask to row-major offsets once.
func sourceIndices(m *field.Mask) []int {
	var idx []int
	for i, b := range m.Bits() {
		if b {
			idx = append(idx, i)
		}
	}

	return idx
}

// force writes SourceValue at every source offset.
func force(f *field.Field, idx []int) {
	data := f.Data()
	for _, i := range idx {
		data[i] = SourceValue
	}
}
