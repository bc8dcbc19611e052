// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/katalvlaran/difftrace/conv"
	"github.com/katalvlaran/difftrace/diffusion"
	"github.com/katalvlaran/difftrace/field"
	"github.com/katalvlaran/difftrace/kernel"
	"github.com/katalvlaran/difftrace/manifest"
	"github.com/katalvlaran/difftrace/profile"
	"github.com/katalvlaran/difftrace/rasterio"
	"github.com/katalvlaran/difftrace/render"
)

// KernelFileName is the kernel image of the signatures run.
const KernelFileName = "kernel.png"

// Scenario is one initial field of the signatures run.
type Scenario struct {
	Label string
	Init  *field.Field
}

// Scenarios returns the two source layouts of an n×n field, q = n/4:
//
//	A: ones with the square [q, n-q) × [q, n-q) cleared;
//	B: ones with the corridor [q, n-q) × [m, n-m) cleared, m = 3q/2.
func Scenarios(n int) ([]Scenario, error) {
	q := n / 4
	m := 3 * q / 2
	a, err := clearedBlock(n, q, q)
	if err != nil {
		return nil, err
	}
	b, err := clearedBlock(n, q, m)
	if err != nil {
		return nil, err
	}

	return []Scenario{{Label: "A", Init: a}, {Label: "B", Init: b}}, nil
}

// clearedBlock is an n×n field of ones with rows [r, n-r) and columns
// [c, n-c) set to zero.
func clearedBlock(n, r, c int) (*field.Field, error) {
	f, err := field.Filled(n, n, diffusion.SourceValue)
	if err != nil {
		return nil, err
	}
	data := f.Data()
	for i := r; i < n-r; i++ {
		for j := c; j < n-c; j++ {
			data[i*n+j] = 0
		}
	}

	return f, nil
}

// RefPoints returns the sampled cells (n/4, n/2), (3n/8, n/2), (n/2, n/2).
func RefPoints(n int) []field.Point {
	return []field.Point{
		{Row: n / 4, Col: n / 2},
		{Row: 3 * n / 8, Col: n / 2},
		{Row: n / 2, Col: n / 2},
	}
}

// SignatureResult holds the profile of every scenario and the DTW distance
// between scenarios A and B per reference point.
type SignatureResult struct {
	Kernel   *field.Field
	Profiles map[string]*profile.Profile
	DTW      []float64
}

// RunSignatures simulates diffusion with source for both scenarios and
// plots the reference-point profiles.
//
// Stage 1 (Prepare): kernel of diameter and std n/5, scenarios, points.
// Stage 2 (Execute): per scenario simulate, snapshot every step, plot.
// Stage 3 (Compare): DTW distance between the A and B traces.
func RunSignatures(cfg SignatureConfig, lg Logger, man *manifest.Manifest) (*SignatureResult, error) {
	lg = orDiscard(lg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t0 := time.Now()
	lg.Printf("RunSignatures()")
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return nil, err
	}
	var outputs []string

	// Stage 1: kernel and geometry.
	n := cfg.Size
	diam := n / 5
	ker, err := kernel.Gaussian2D(diam, float64(diam))
	if err != nil {
		return nil, err
	}
	kpath := filepath.Join(cfg.OutDir, KernelFileName)
	if err := rasterio.WriteNormalized(kpath, ker); err != nil {
		return nil, err
	}
	outputs = append(outputs, kpath)
	lg.Printf("kernel diam:%d std:%d", diam, diam)

	scenarios, err := Scenarios(n)
	if err != nil {
		return nil, err
	}
	refs := RefPoints(n)
	cv := conv.Direct{Boundary: cfg.Boundary, Workers: cfg.Workers}
	res := &SignatureResult{Kernel: ker, Profiles: make(map[string]*profile.Profile, len(scenarios))}

	// Stage 2: simulate.
	for _, sc := range scenarios {
		label := sc.Label
		lg.Printf("diffuse_with_source(%s)", label)
		simCfg := diffusion.Config{
			Steps:     cfg.Steps,
			RefPoints: refs,
			Convolver: cv,
			OnStep: func(step int, f *field.Field) error {
				lg.Printf("%s step:%d mean:%.4f", label, step, f.Mean())
				if !cfg.Snapshots {
					return nil
				}
				path := filepath.Join(cfg.OutDir, fmt.Sprintf("%s_%02d.png", label, step))
				if err := rasterio.WriteSnapshot(path, f); err != nil {
					return err
				}
				outputs = append(outputs, path)
				return nil
			},
		}
		prof, err := diffusion.Simulate(sc.Init, ker, simCfg)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", label, err)
		}
		res.Profiles[label] = prof

		path := filepath.Join(cfg.OutDir, label+".png")
		err = render.Profiles(path, prof, render.LineOptions{
			Title:  label,
			XLabel: "step",
			YLabel: "value",
			Width:  cfg.FigSize,
			Height: cfg.FigSize,
		})
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, path)
	}

	// Stage 3: compare A and B trace by trace.
	a, b := res.Profiles["A"], res.Profiles["B"]
	for j := range refs {
		ta, _ := a.Trace(j)
		tb, _ := b.Trace(j)
		d, err := profile.DTW(ta, tb, profile.DefaultOptions())
		if err != nil {
			return nil, err
		}
		res.DTW = append(res.DTW, d)
		lg.Printf("dtw ref %d %v: %.6f", j, refs[j], d)
	}

	if man != nil {
		for _, p := range outputs {
			man.AddOutput(p)
		}
		man.SetMetric("kernel_diameter", diam)
		man.SetMetric("dtw_a_b", res.DTW)
		for label, prof := range res.Profiles {
			man.SetMetric("profile_"+label, prof.Values)
		}
	}
	lg.Printf("Elapsed time:%v", time.Since(t0))
	lg.Printf("Output generated in %s", cfg.OutDir)

	return res, nil
}
