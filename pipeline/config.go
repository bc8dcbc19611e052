// SPDX-License-Identifier: MIT

package pipeline

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/katalvlaran/difftrace/conv"
)

var (
	// ErrNoOutDir indicates an empty output directory.
	ErrNoOutDir = errors.New("pipeline: output directory is required")

	// ErrNoInput indicates an empty input path.
	ErrNoInput = errors.New("pipeline: input path is required")

	// ErrBadSize indicates a non-positive figure or field size.
	ErrBadSize = errors.New("pipeline: size must be positive")

	// ErrBadSteps indicates a non-positive step or std count.
	ErrBadSteps = errors.New("pipeline: step count must be positive")

	// ErrRegionShape indicates a region mask that does not match the stack.
	ErrRegionShape = errors.New("pipeline: region mask shape differs from stack shape")
)

// Logger is the logging surface of the runs; *log.Logger satisfies it.
type Logger interface {
	Printf(format string, v ...any)
}

// orDiscard returns l, or a logger that drops everything when l is nil.
func orDiscard(l Logger) Logger {
	if l == nil {
		return log.New(io.Discard, "", 0)
	}

	return l
}

// ThresholdConfig parameterizes RunThreshold.
type ThresholdConfig struct {
	StackDir      string  `yaml:"hdfdir"`
	OutDir        string  `yaml:"outdir"`
	MaskPath      string  `yaml:"urbanmask,omitempty"`
	MinPix        float64 `yaml:"minpix"` // negative: minimum of the largest-step field
	DistTransform bool    `yaml:"disttransform"`
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
}

// DefaultThresholdConfig returns the defaults of the threshold command.
func DefaultThresholdConfig() ThresholdConfig {
	return ThresholdConfig{
		StackDir:      "/tmp/out/",
		OutDir:        "/tmp/out/",
		MinPix:        -1,
		DistTransform: true,
		Width:         640,
		Height:        480,
	}
}

// Validate checks paths and figure size.
func (c ThresholdConfig) Validate() error {
	if c.StackDir == "" {
		return fmt.Errorf("hdfdir: %w", ErrNoInput)
	}
	if c.OutDir == "" {
		return ErrNoOutDir
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("figure %dx%d: %w", c.Width, c.Height, ErrBadSize)
	}

	return nil
}

// SignatureConfig parameterizes RunSignatures.
type SignatureConfig struct {
	OutDir    string        `yaml:"outdir"`
	Size      int           `yaml:"size"`  // side of the square field
	Steps     int           `yaml:"steps"` // diffusion steps per scenario
	Snapshots bool          `yaml:"snapshots"`
	Boundary  conv.Boundary `yaml:"boundary"`
	Workers   int           `yaml:"workers"`
	FigSize   int           `yaml:"figsize"` // side of the profile figures, pixels
}

// DefaultSignatureConfig returns the geometry of the article figure.
func DefaultSignatureConfig() SignatureConfig {
	return SignatureConfig{
		OutDir:    "/tmp/out/",
		Size:      301,
		Steps:     10,
		Snapshots: true,
		Boundary:  conv.Fill,
		FigSize:   800,
	}
}

// minSignatureSize keeps the kernel diameter (Size/5) at least one cell.
const minSignatureSize = 5

// Validate checks the geometry.
func (c SignatureConfig) Validate() error {
	if c.OutDir == "" {
		return ErrNoOutDir
	}
	if c.Size < minSignatureSize {
		return fmt.Errorf("size %d (min %d): %w", c.Size, minSignatureSize, ErrBadSize)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("steps %d: %w", c.Steps, ErrBadSteps)
	}
	if c.FigSize <= 0 {
		return fmt.Errorf("figsize %d: %w", c.FigSize, ErrBadSize)
	}
	if _, err := conv.ParseBoundary(c.Boundary.String()); err != nil {
		return err
	}

	return nil
}

// StackConfig parameterizes RunStack.
type StackConfig struct {
	MaskPath string        `yaml:"mask"`
	OutDir   string        `yaml:"outdir"`
	Stds     int           `yaml:"stds"` // blur stds 1..Stds
	Compress bool          `yaml:"compress"`
	Boundary conv.Boundary `yaml:"boundary"`
	Workers  int           `yaml:"workers"`
}

// DefaultStackConfig returns the defaults of the stack command.
func DefaultStackConfig() StackConfig {
	return StackConfig{OutDir: "/tmp/out/", Stds: 10, Boundary: conv.Fill}
}

// Validate checks paths and the std count.
func (c StackConfig) Validate() error {
	if c.MaskPath == "" {
		return fmt.Errorf("mask: %w", ErrNoInput)
	}
	if c.OutDir == "" {
		return ErrNoOutDir
	}
	if c.Stds <= 0 {
		return fmt.Errorf("stds %d: %w", c.Stds, ErrBadSteps)
	}
	if _, err := conv.ParseBoundary(c.Boundary.String()); err != nil {
		return err
	}

	return nil
}

// DistConfig parameterizes RunDistTransform.
type DistConfig struct {
	Input  string `yaml:"input"` // field file (.npy, .npy.zst) or mask image
	OutDir string `yaml:"outdir"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// DefaultDistConfig returns the defaults of the disttransform command.
func DefaultDistConfig() DistConfig {
	return DistConfig{OutDir: "/tmp/out/", Width: 640, Height: 480}
}

// Validate checks paths and figure size.
func (c DistConfig) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input: %w", ErrNoInput)
	}
	if c.OutDir == "" {
		return ErrNoOutDir
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("figure %dx%d: %w", c.Width, c.Height, ErrBadSize)
	}

	return nil
}
