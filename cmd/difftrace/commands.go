// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/katalvlaran/difftrace/conv"
	"github.com/katalvlaran/difftrace/manifest"
	"github.com/katalvlaran/difftrace/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// invocation rebuilds the parsed command line: the command path, every flag
// set explicitly (inherited ones included) and the positional arguments.
func invocation(cmd *cobra.Command) []string {
	args := []string{cmd.CommandPath()}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		args = append(args, fmt.Sprintf("--%s=%s", f.Name, f.Value.String()))
	})

	return append(args, cmd.Flags().Args()...)
}

// recorded writes README.yaml into outDir before run starts and rewrites it
// with the outcome afterwards, so failed runs leave their invocation behind.
func recorded(cmd *cobra.Command, outDir string, params any, lg *log.Logger, run func(*manifest.Manifest) error) error {
	man := manifest.Record(cmd.Name(), invocation(cmd), params)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	path, err := man.Write(outDir)
	if err != nil {
		return err
	}
	lg.Printf("manifest %s", path)

	runErr := run(man)
	if _, err := man.Finish(outDir, runErr); err != nil && runErr == nil {
		return err
	}

	return runErr
}

func newThresholdCmd(logger func() *log.Logger) *cobra.Command {
	cfg := pipeline.DefaultThresholdConfig()
	cmd := &cobra.Command{
		Use:   "threshold",
		Short: "Map the step at which each cell of a field stack reaches a threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lg := logger()
			return recorded(cmd, cfg.OutDir, cfg, lg, func(man *manifest.Manifest) error {
				_, err := pipeline.RunThreshold(cfg, lg, man)
				return err
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfg.StackDir, "hdfdir", cfg.StackDir, "stack directory of NN.npy[.zst] fields")
	f.StringVar(&cfg.OutDir, "outdir", cfg.OutDir, "output directory")
	f.StringVar(&cfg.MaskPath, "urbanmask", cfg.MaskPath, "region mask image (whole field when empty)")
	f.Float64Var(&cfg.MinPix, "minpix", cfg.MinPix, "threshold; negative selects the minimum of the largest-step field")
	f.BoolVar(&cfg.DistTransform, "disttransform", cfg.DistTransform, "also render the distance transform of the first field")
	f.IntVar(&cfg.Width, "width", cfg.Width, "figure width in pixels")
	f.IntVar(&cfg.Height, "height", cfg.Height, "figure height in pixels")

	return cmd
}

func newSignaturesCmd(logger func() *log.Logger) *cobra.Command {
	cfg := pipeline.DefaultSignatureConfig()
	boundary := cfg.Boundary.String()
	cmd := &cobra.Command{
		Use:   "signatures",
		Short: "Simulate diffusion with source and plot reference-point profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := conv.ParseBoundary(boundary)
			if err != nil {
				return err
			}
			cfg.Boundary = b
			lg := logger()
			return recorded(cmd, cfg.OutDir, cfg, lg, func(man *manifest.Manifest) error {
				_, err := pipeline.RunSignatures(cfg, lg, man)
				return err
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfg.OutDir, "outdir", cfg.OutDir, "output directory")
	f.IntVar(&cfg.Size, "size", cfg.Size, "side of the square field")
	f.IntVar(&cfg.Steps, "steps", cfg.Steps, "diffusion steps per scenario")
	f.BoolVar(&cfg.Snapshots, "snapshots", cfg.Snapshots, "write a PNG of the field after every step")
	f.StringVar(&boundary, "boundary", boundary, "convolution boundary: fill, edge or wrap")
	f.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent convolution bands (0: GOMAXPROCS)")
	f.IntVar(&cfg.FigSize, "figsize", cfg.FigSize, "side of the profile figures in pixels")

	return cmd
}

func newStackCmd(logger func() *log.Logger) *cobra.Command {
	cfg := pipeline.DefaultStackConfig()
	boundary := cfg.Boundary.String()
	cmd := &cobra.Command{
		Use:   "stack",
		Short: "Generate a field stack by blurring a mask at std 1..N",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := conv.ParseBoundary(boundary)
			if err != nil {
				return err
			}
			cfg.Boundary = b
			lg := logger()
			return recorded(cmd, cfg.OutDir, cfg, lg, func(man *manifest.Manifest) error {
				_, err := pipeline.RunStack(cfg, lg, man)
				return err
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfg.MaskPath, "mask", cfg.MaskPath, "mask image")
	f.StringVar(&cfg.OutDir, "outdir", cfg.OutDir, "output directory")
	f.IntVar(&cfg.Stds, "stds", cfg.Stds, "largest blur std")
	f.BoolVar(&cfg.Compress, "compress", cfg.Compress, "write zstd-compressed .npy.zst files")
	f.StringVar(&boundary, "boundary", boundary, "convolution boundary: fill, edge or wrap")
	f.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent convolution bands (0: GOMAXPROCS)")
	_ = cmd.MarkFlagRequired("mask")

	return cmd
}

func newDistCmd(logger func() *log.Logger) *cobra.Command {
	cfg := pipeline.DefaultDistConfig()
	cmd := &cobra.Command{
		Use:   "disttransform",
		Short: "Render the Euclidean distance transform of a field or mask",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lg := logger()
			return recorded(cmd, cfg.OutDir, cfg, lg, func(man *manifest.Manifest) error {
				_, err := pipeline.RunDistTransform(cfg, lg, man)
				return err
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfg.Input, "input", cfg.Input, "field file (.npy, .npy.zst) or mask image")
	f.StringVar(&cfg.OutDir, "outdir", cfg.OutDir, "output directory")
	f.IntVar(&cfg.Width, "width", cfg.Width, "figure width in pixels")
	f.IntVar(&cfg.Height, "height", cfg.Height, "figure height in pixels")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
