// SPDX-License-Identifier: MIT

// Package manifest records how a pipeline run was invoked and what it
// produced, as a README.yaml file next to the outputs.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// FileName is the manifest file written into the output directory.
const FileName = "README.yaml"

// Run states stored in Manifest.Status.
const (
	StatusRunning = "running"
	StatusOK      = "ok"
	StatusFailed  = "failed"
)

// Manifest describes one run.
type Manifest struct {
	Command string         `yaml:"command"`
	Args    []string       `yaml:"args"`
	Params  any            `yaml:"params"`
	Started time.Time      `yaml:"started"`
	Status  string         `yaml:"status"`
	Error   string         `yaml:"error,omitempty"`
	Elapsed string         `yaml:"elapsed"`
	Outputs []string       `yaml:"outputs"`
	Metrics map[string]any `yaml:"metrics,omitempty"`
}

// Record captures the invocation. Call it before any work starts.
func Record(command string, args []string, params any) *Manifest {
	return &Manifest{
		Command: command,
		Args:    append([]string(nil), args...),
		Params:  params,
		Started: time.Now(),
		Status:  StatusRunning,
	}
}

// Finish marks the run ok, or failed with runErr, and rewrites the manifest
// in dir.
func (m *Manifest) Finish(dir string, runErr error) (string, error) {
	m.Status, m.Error = StatusOK, ""
	if runErr != nil {
		m.Status, m.Error = StatusFailed, runErr.Error()
	}

	return m.Write(dir)
}

// AddOutput lists a produced file, by base name.
func (m *Manifest) AddOutput(path string) {
	m.Outputs = append(m.Outputs, filepath.Base(path))
}

// SetMetric stores a summary value under key.
func (m *Manifest) SetMetric(key string, v any) {
	if m.Metrics == nil {
		m.Metrics = make(map[string]any)
	}
	m.Metrics[key] = v
}

// Write stamps the elapsed time and stores the manifest in dir. It returns
// the path written.
func (m *Manifest) Write(dir string) (string, error) {
	m.Elapsed = time.Since(m.Started).Round(time.Millisecond).String()
	m.Outputs = lo.Uniq(m.Outputs)
	sort.Strings(m.Outputs)

	data, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("manifest: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("manifest %q: %w", path, err)
	}

	return path, nil
}

// Read loads a manifest written by Write. Params and metrics come back as
// generic YAML values.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest %q: %w", path, err)
	}

	return &m, nil
}
