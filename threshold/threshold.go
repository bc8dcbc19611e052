// SPDX-License-Identifier: MIT

package threshold

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/difftrace/field"
)

// Sentinel marks cells that never reach the threshold.
const Sentinel = -10.0

var (
	// ErrEmptyStack indicates an operation that needs at least one field.
	ErrEmptyStack = errors.New("threshold: empty stack")

	// ErrShapeMismatch indicates a stack field whose shape differs from the map.
	ErrShapeMismatch = errors.New("threshold: field shape differs from map shape")
)

// Source is an ordered stack of fields indexed by step.
// rasterio.Stack implements it over files; Frames implements it in memory.
type Source interface {
	// Len returns the number of fields.
	Len() int
	// Step returns the step value of position i.
	Step(i int) int
	// Field decodes the field at position i.
	Field(i int) (*field.Field, error)
}

// Scan builds the threshold-time map of shape for src and minval.
//
// Stage 1 (Prepare): fill the map with Sentinel.
// Stage 2 (Execute): walk positions by descending step, k = n - i, overwrite
// every qualifying cell with k.
//
// An empty stack is not an error: the result is all Sentinel.
// Complexity: O(n·R·C) time, one decoded field in memory at a time.
func Scan(src Source, shape field.Shape, minval float64) (*field.Field, error) {
	rank, err := field.NewShape(shape)
	if err != nil {
		return nil, err
	}
	rank.Fill(Sentinel)
	out := rank.Data()

	order := Descending(src)
	n := len(order)
	for i, pos := range order {
		k := float64(n - i)
		f, err := src.Field(pos)
		if err != nil {
			return nil, err
		}
		if f.Rows() != shape.Rows || f.Cols() != shape.Cols {
			return nil, fmt.Errorf("step %d: field %v, map %v: %w", src.Step(pos), f.Shape(), shape, ErrShapeMismatch)
		}
		for idx, v := range f.Data() {
			if v >= minval {
				out[idx] = k
			}
		}
	}

	return rank, nil
}

// Descending returns the positions of src ordered by step, largest first.
// Equal steps keep their source order.
func Descending(src Source) []int {
	order := make([]int, src.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return src.Step(order[a]) > src.Step(order[b])
	})

	return order
}

// AutoMin returns the minimum of the field at the largest step.
func AutoMin(src Source) (float64, error) {
	if src.Len() == 0 {
		return 0, ErrEmptyStack
	}
	last := Descending(src)[0]
	f, err := src.Field(last)
	if err != nil {
		return 0, err
	}

	return f.Min(), nil
}

// Resolve returns requested when it is non-negative, otherwise AutoMin(src).
// auto reports which branch was taken.
func Resolve(src Source, requested float64) (minval float64, auto bool, err error) {
	if requested >= 0 {
		return requested, false, nil
	}
	minval, err = AutoMin(src)

	return minval, true, err
}

// Coverage summarizes a rank map over a region.
type Coverage struct {
	Region  int         `yaml:"region"`  // cells inside the region
	Reached int         `yaml:"reached"` // region cells with a rank
	Never   int         `yaml:"never"`   // region cells still at Sentinel
	ByRank  map[int]int `yaml:"by_rank"` // region cells per rank
}

// Measure counts reached and never-reached cells of rank inside region.
func Measure(rank *field.Field, region *field.Mask) (Coverage, error) {
	if err := region.CheckShape(rank.Shape()); err != nil {
		return Coverage{}, err
	}
	cov := Coverage{ByRank: make(map[int]int)}
	bits := region.Bits()
	for i, v := range rank.Data() {
		if !bits[i] {
			continue
		}
		cov.Region++
		if v == Sentinel {
			cov.Never++
			continue
		}
		cov.Reached++
		cov.ByRank[int(v)]++
	}

	return cov, nil
}
