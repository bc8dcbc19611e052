// SPDX-License-Identifier: MIT

// Command difftrace runs the threshold-time and diffusion-signature
// analyses over 2D raster fields.
//
//	difftrace threshold     --hdfdir DIR --outdir DIR [--urbanmask PATH] [--minpix F]
//	difftrace signatures    --outdir DIR [--size N] [--steps N] [--boundary fill|edge|wrap]
//	difftrace stack         --mask PATH --outdir DIR [--stds N] [--compress]
//	difftrace disttransform --input PATH --outdir DIR
//
// Each run writes README.yaml into its output directory.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newLogger returns the run logger; quiet discards everything.
func newLogger(w io.Writer, quiet bool) *log.Logger {
	if quiet {
		w = io.Discard
	}

	return log.New(w, "[difftrace] ", log.LstdFlags|log.Lmicroseconds)
}

func newRootCmd(logw io.Writer) *cobra.Command {
	var quiet bool
	root := &cobra.Command{
		Use:           "difftrace",
		Short:         "Threshold-time maps and diffusion signatures of raster fields",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress logging")

	logger := func() *log.Logger { return newLogger(logw, quiet) }
	root.AddCommand(
		newThresholdCmd(logger),
		newSignaturesCmd(logger),
		newStackCmd(logger),
		newDistCmd(logger),
	)

	return root
}
