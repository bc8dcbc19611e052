// SPDX-License-Identifier: MIT

package pipeline

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/katalvlaran/difftrace/contour"
	"github.com/katalvlaran/difftrace/distance"
	"github.com/katalvlaran/difftrace/field"
	"github.com/katalvlaran/difftrace/manifest"
	"github.com/katalvlaran/difftrace/rasterio"
	"github.com/katalvlaran/difftrace/render"
	"github.com/katalvlaran/difftrace/threshold"
)

// DistFileName is the distance-transform figure of the threshold run.
const DistFileName = "distransform.png"

// neverColor paints cells that never reach the threshold.
var neverColor = color.Gray{Y: 230}

// ThresholdResult is what RunThreshold computed.
type ThresholdResult struct {
	MinVal   float64
	Auto     bool
	Rank     *field.Field
	Coverage threshold.Coverage
	Figure   string
}

// ThresholdFileName names the map figure after the threshold, in hundredths.
func ThresholdFileName(minval float64) string {
	return fmt.Sprintf("diffusion_%03d.png", int(minval*100))
}

// RunThreshold builds and renders the threshold-time map of cfg.StackDir.
//
// Stage 1 (Load): open the stack, decode its first field, read the region.
// Stage 2 (Resolve): pick the threshold (auto when cfg.MinPix < 0).
// Stage 3 (Scan): build the rank map, measure it over the region.
// Stage 4 (Render): heat map with region contours, distance transform.
func RunThreshold(cfg ThresholdConfig, lg Logger, man *manifest.Manifest) (*ThresholdResult, error) {
	lg = orDiscard(lg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t0 := time.Now()
	lg.Printf("RunThreshold()")
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return nil, err
	}

	// Stage 1: stack, initial field and region.
	stack, err := rasterio.OpenStack(cfg.StackDir)
	if err != nil {
		return nil, err
	}
	lg.Printf("stack %s: %d fields, steps %v", cfg.StackDir, stack.Len(), stack.Steps())

	var region *field.Mask
	if cfg.MaskPath != "" {
		if region, err = rasterio.LoadMask(cfg.MaskPath, rasterio.PNG{}); err != nil {
			return nil, err
		}
	}

	var first *field.Field
	var shape field.Shape
	switch {
	case stack.Len() > 0:
		if first, err = stack.First(); err != nil {
			return nil, err
		}
		shape = first.Shape()
	case region != nil:
		lg.Printf("stack %s is empty, map sized by the region", cfg.StackDir)
		shape = region.Shape()
	default:
		return nil, fmt.Errorf("stack %q: %w", cfg.StackDir, threshold.ErrEmptyStack)
	}
	if region == nil {
		region, _ = field.FullMask(shape)
	} else if err := region.CheckShape(shape); err != nil {
		return nil, fmt.Errorf("mask %q %v, stack %v: %w", cfg.MaskPath, region.Shape(), shape, ErrRegionShape)
	}

	// Stage 2: threshold.
	res := &ThresholdResult{}
	res.MinVal, res.Auto, err = threshold.Resolve(stack, cfg.MinPix)
	if errors.Is(err, threshold.ErrEmptyStack) {
		res.MinVal, res.Auto, err = 0, true, nil
	}
	if err != nil {
		return nil, err
	}
	lg.Printf("minpix:%v (auto:%t)", res.MinVal, res.Auto)

	// Stage 3: scan and measure.
	lg.Printf("Traversing backwards...")
	if res.Rank, err = threshold.Scan(stack, shape, res.MinVal); err != nil {
		return nil, err
	}
	if res.Coverage, err = threshold.Measure(res.Rank, region); err != nil {
		return nil, err
	}
	if res.Coverage.Reached == 0 {
		lg.Printf("no region cell reaches %v", res.MinVal)
	}

	// Stage 4: figures.
	border, err := contour.Suzuki{Approx: contour.Simple}.Extract(region)
	if err != nil {
		return nil, err
	}
	parts, err := contour.Components(region, contour.Conn8)
	if err != nil {
		return nil, err
	}
	mean := 0.0
	if first != nil {
		mean = first.Mean()
	}
	res.Figure = filepath.Join(cfg.OutDir, ThresholdFileName(res.MinVal))
	err = render.HeatMap(res.Figure, res.Rank, render.HeatOptions{
		Title:     fmt.Sprintf("Initial mean:%.02f, threshold:%.02f", mean, res.MinVal),
		Width:     cfg.Width,
		Height:    cfg.Height,
		Min:       1,
		Max:       float64(stack.Len()),
		Underflow: neverColor,
		ColorBar:  true,
		Contours:  border,
	})
	if err != nil {
		return nil, err
	}
	lg.Printf("wrote %s", res.Figure)

	outputs := []string{res.Figure}
	if cfg.DistTransform && first != nil {
		path := filepath.Join(cfg.OutDir, DistFileName)
		switch err := distanceFigure(path, first, cfg.Width, cfg.Height); {
		case errors.Is(err, distance.ErrNoBackground):
			lg.Printf("skipping %s: %v", DistFileName, err)
		case err != nil:
			return nil, err
		default:
			outputs = append(outputs, path)
			lg.Printf("wrote %s", path)
		}
	}

	if man != nil {
		for _, p := range outputs {
			man.AddOutput(p)
		}
		man.SetMetric("minpix", res.MinVal)
		man.SetMetric("auto_threshold", res.Auto)
		man.SetMetric("coverage", res.Coverage)
		man.SetMetric("region_components", len(parts))
		man.SetMetric("region_borders", len(border))
	}
	lg.Printf("Elapsed time:%v", time.Since(t0))

	return res, nil
}

// distanceFigure renders the distance transform of f to path.
func distanceFigure(path string, f *field.Field, w, h int) error {
	d, err := distance.EDT(f)
	if err != nil {
		return err
	}

	return render.HeatMap(path, d, render.HeatOptions{
		Title:    "Distance transform",
		Width:    w,
		Height:   h,
		ColorBar: true,
	})
}
