// SPDX-License-Identifier: MIT

package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/difftrace/field"
	"github.com/katalvlaran/difftrace/manifest"
	"github.com/katalvlaran/difftrace/rasterio"
)

// loadInput reads a field file, or a mask image converted to 0/1.
func loadInput(path string) (*field.Field, error) {
	if strings.HasSuffix(path, rasterio.ExtNpy) || strings.HasSuffix(path, rasterio.ExtNpyZst) {
		return rasterio.ReadField(path)
	}
	m, err := rasterio.LoadMask(path, rasterio.PNG{})
	if err != nil {
		return nil, err
	}

	return m.ToField(), nil
}

// RunDistTransform renders the distance transform of cfg.Input. It returns
// the figure path.
func RunDistTransform(cfg DistConfig, lg Logger, man *manifest.Manifest) (string, error) {
	lg = orDiscard(lg)
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	lg.Printf("RunDistTransform()")
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return "", err
	}
	f, err := loadInput(cfg.Input)
	if err != nil {
		return "", err
	}

	path := filepath.Join(cfg.OutDir, DistFileName)
	if err := distanceFigure(path, f, cfg.Width, cfg.Height); err != nil {
		return "", err
	}
	lg.Printf("wrote %s", path)
	if man != nil {
		man.AddOutput(path)
	}

	return path, nil
}
