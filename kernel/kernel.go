// SPDX-License-Identifier: MIT

package kernel

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/difftrace/field"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrBadDiameter indicates a kernel diameter below 1.
	ErrBadDiameter = errors.New("kernel: diameter must be >= 1")

	// ErrBadStd indicates a non-positive or non-finite standard deviation.
	ErrBadStd = errors.New("kernel: standard deviation must be finite and > 0")
)

// GaussianWindow returns the diam-point Gaussian window with standard
// deviation std. The window is symmetric around (diam-1)/2.
// Complexity: O(diam).
func GaussianWindow(diam int, std float64) ([]float64, error) {
	if err := validate(diam, std); err != nil {
		return nil, err
	}

	return window(diam, std, 0), nil
}

// validate checks the diameter and the standard deviation.
func validate(diam int, std float64) error {
	if diam < 1 {
		return fmt.Errorf("diameter %d: %w", diam, ErrBadDiameter)
	}
	if !(std > 0) || math.IsInf(std, 0) {
		return fmt.Errorf("std %g: %w", std, ErrBadStd)
	}

	return nil
}

// window samples exp(-(d²-floor)/(2·std²)) at the distances d of the diam
// points from the window center.
func window(diam int, std, floor float64) []float64 {
	w := make([]float64, diam)
	center := float64(diam-1) / 2
	sig2 := 2 * std * std
	for n := range w {
		d := float64(n) - center
		w[n] = math.Exp(-(d*d - floor) / sig2)
	}

	return w
}

// nearest returns the smallest squared distance of a sample to the center
// of a diam-point window: 0 for odd diam, 1/4 for even.
func nearest(diam int) float64 {
	if diam%2 == 0 {
		return 0.25
	}

	return 0
}

// Gaussian2D builds a normalized diam×diam Gaussian kernel as the outer
// product of GaussianWindow(diam, std) with itself.
// Stage 1 (Validate): diam and std.
// Stage 2 (Execute): outer product of the window rescaled to a peak of 1,
// so tiny std values cannot underflow every sample of an even window.
// Stage 3 (Finalize): divide by the total so the kernel sums to 1.
// Complexity: O(diam²).
func Gaussian2D(diam int, std float64) (*field.Field, error) {
	if err := validate(diam, std); err != nil {
		return nil, err
	}
	w := window(diam, std, nearest(diam))
	k, err := field.New(diam, diam)
	if err != nil {
		return nil, err
	}
	data := k.Data()
	for i, wi := range w {
		base := i * diam
		for j, wj := range w {
			data[base+j] = wi * wj
		}
	}
	if err := normalize(data); err != nil {
		return nil, fmt.Errorf("diameter %d, std %g: %w", diam, std, err)
	}

	return k, nil
}

// Uniform builds a diam×diam box kernel whose entries are all 1/diam².
func Uniform(diam int) (*field.Field, error) {
	if diam < 1 {
		return nil, fmt.Errorf("diameter %d: %w", diam, ErrBadDiameter)
	}

	return field.Filled(diam, diam, 1/float64(diam*diam))
}

// normalize scales data in place to unit sum. A zero or non-finite total
// fails with ErrBadStd.
func normalize(data []float64) error {
	sum := floats.Sum(data)
	if !(sum > 0) || math.IsInf(sum, 0) {
		return ErrBadStd
	}
	floats.Scale(1/sum, data)

	return nil
}
