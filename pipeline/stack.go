// SPDX-License-Identifier: MIT

package pipeline

import (
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/katalvlaran/difftrace/conv"
	"github.com/katalvlaran/difftrace/field"
	"github.com/katalvlaran/difftrace/kernel"
	"github.com/katalvlaran/difftrace/manifest"
	"github.com/katalvlaran/difftrace/rasterio"
)

// BlurDiameter returns the Gaussian kernel diameter used for std: the odd
// 2·⌈3·std⌉+1, capped to the largest odd size that fits in s.
func BlurDiameter(std float64, s field.Shape) int {
	d := 2*int(math.Ceil(3*std)) + 1
	limit := s.Rows
	if s.Cols < limit {
		limit = s.Cols
	}
	if limit%2 == 0 {
		limit--
	}
	if d > limit {
		d = limit
	}

	return d
}

// RunStack writes the stack consumed by RunThreshold: step 0 is the mask
// itself (1 inside, 0 outside), step s its Gaussian blur at std s.
// It returns the paths written, in step order.
func RunStack(cfg StackConfig, lg Logger, man *manifest.Manifest) ([]string, error) {
	lg = orDiscard(lg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t0 := time.Now()
	lg.Printf("RunStack()")
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return nil, err
	}

	m, err := rasterio.LoadMask(cfg.MaskPath, rasterio.PNG{})
	if err != nil {
		return nil, err
	}
	base := m.ToField()
	lg.Printf("mask %s %v: %d cells inside", cfg.MaskPath, m.Shape(), m.Count())

	paths := make([]string, 0, cfg.Stds+1)
	write := func(step int, f *field.Field) error {
		path := filepath.Join(cfg.OutDir, rasterio.StepName(step, cfg.Compress))
		if err := rasterio.WriteField(path, f); err != nil {
			return err
		}
		paths = append(paths, path)
		return nil
	}
	if err := write(0, base); err != nil {
		return nil, err
	}

	cv := conv.Direct{Boundary: cfg.Boundary, Workers: cfg.Workers}
	out, _ := field.NewShape(base.Shape())
	for std := 1; std <= cfg.Stds; std++ {
		diam := BlurDiameter(float64(std), base.Shape())
		k, err := kernel.Gaussian2D(diam, float64(std))
		if err != nil {
			return nil, err
		}
		if err := cv.Convolve(out, base, k); err != nil {
			return nil, err
		}
		if err := write(std, out); err != nil {
			return nil, err
		}
		lg.Printf("std:%d diam:%d min:%.4f max:%.4f", std, diam, out.Min(), out.Max())
	}

	if man != nil {
		for _, p := range paths {
			man.AddOutput(p)
		}
		man.SetMetric("inside_cells", m.Count())
	}
	lg.Printf("Elapsed time:%v", time.Since(t0))

	return paths, nil
}
