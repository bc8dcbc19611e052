// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/difftrace/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignaturesCommand(t *testing.T) {
	out := t.TempDir()
	var logs bytes.Buffer
	root := newRootCmd(&logs)
	root.SetArgs([]string{"signatures", "--outdir", out, "--size", "10", "--steps", "1", "--snapshots=false", "--boundary", "edge", "--figsize", "100"})
	require.NoError(t, root.Execute())

	assert.FileExists(t, filepath.Join(out, "A.png"))
	assert.Contains(t, logs.String(), "[difftrace] ")
	assert.Contains(t, logs.String(), "RunSignatures()")

	man, err := manifest.Read(filepath.Join(out, manifest.FileName))
	require.NoError(t, err)
	assert.Equal(t, "signatures", man.Command)
	assert.Equal(t, manifest.StatusOK, man.Status)
	assert.Equal(t, []string{
		"difftrace signatures",
		"--boundary=edge",
		"--figsize=100",
		"--outdir=" + out,
		"--size=10",
		"--snapshots=false",
		"--steps=1",
	}, man.Args)
	assert.Contains(t, man.Outputs, "kernel.png")
	params, ok := man.Params.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "edge", params["boundary"])
	assert.Equal(t, 10, params["size"])
}

// TestFailedRunKeepsManifest: the invocation is on disk even when the run
// fails, marked failed with the error.
func TestFailedRunKeepsManifest(t *testing.T) {
	out := t.TempDir()
	missing := filepath.Join(t.TempDir(), "nope")
	root := newRootCmd(&bytes.Buffer{})
	root.SetArgs([]string{"--quiet", "threshold", "--hdfdir", missing, "--outdir", out})
	err := root.Execute()
	require.Error(t, err)

	man, rerr := manifest.Read(filepath.Join(out, manifest.FileName))
	require.NoError(t, rerr)
	assert.Equal(t, "threshold", man.Command)
	assert.Equal(t, manifest.StatusFailed, man.Status)
	assert.Equal(t, err.Error(), man.Error)
	assert.Equal(t, []string{"difftrace threshold", "--hdfdir=" + missing, "--outdir=" + out, "--quiet=true"}, man.Args)
	assert.Empty(t, man.Outputs)
}

func TestQuiet(t *testing.T) {
	var logs bytes.Buffer
	root := newRootCmd(&logs)
	root.SetArgs([]string{"--quiet", "signatures", "--outdir", t.TempDir(), "--size", "10", "--steps", "1", "--figsize", "100"})
	require.NoError(t, root.Execute())
	assert.Empty(t, logs.String())
}

func TestBadBoundary(t *testing.T) {
	root := newRootCmd(&bytes.Buffer{})
	root.SetArgs([]string{"signatures", "--outdir", t.TempDir(), "--boundary", "mirror"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mirror")
}

func TestMissingRequiredFlag(t *testing.T) {
	root := newRootCmd(&bytes.Buffer{})
	root.SetArgs([]string{"stack", "--outdir", t.TempDir()})
	require.Error(t, root.Execute())
}
