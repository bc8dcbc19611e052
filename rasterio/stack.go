// SPDX-License-Identifier: MIT

package rasterio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/katalvlaran/difftrace/field"
	"github.com/samber/lo"
)

// Entry is one field file of a stack.
type Entry struct {
	Step int
	Path string
}

// Stack is an ascending list of field files. It decodes on demand.
type Stack struct {
	Dir     string
	Entries []Entry
}

// OpenStack lists the field files of dir and orders them by step.
//
// Files without a field suffix and subdirectories are ignored. A stem that
// does not parse as an integer fails with ErrBadStepName; two files with the
// same step fail with ErrDuplicateStep. An existing but empty directory
// yields an empty stack.
func OpenStack(dir string) (*Stack, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("stack %q: %w", dir, err)
	}
	files := lo.Filter(des, func(de os.DirEntry, _ int) bool {
		_, _, ok := trimExt(de.Name())
		return !de.IsDir() && ok
	})

	entries := make([]Entry, 0, len(files))
	for _, de := range files {
		stem, _, _ := trimExt(de.Name())
		step, err := strconv.Atoi(stem)
		if err != nil {
			return nil, fmt.Errorf("stack %q: %q: %w", dir, de.Name(), ErrBadStepName)
		}
		entries = append(entries, Entry{Step: step, Path: filepath.Join(dir, de.Name())})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Step < entries[j].Step })

	dups := lo.FindDuplicatesBy(entries, func(e Entry) int { return e.Step })
	if len(dups) > 0 {
		return nil, fmt.Errorf("stack %q: step %d: %w", dir, dups[0].Step, ErrDuplicateStep)
	}

	return &Stack{Dir: dir, Entries: entries}, nil
}

// Len returns the number of fields.
func (s *Stack) Len() int { return len(s.Entries) }

// Step returns the step of position i.
func (s *Stack) Step(i int) int { return s.Entries[i].Step }

// Field decodes the field at position i.
func (s *Stack) Field(i int) (*field.Field, error) { return ReadField(s.Entries[i].Path) }

// Steps lists the steps in ascending order.
func (s *Stack) Steps() []int {
	return lo.Map(s.Entries, func(e Entry, _ int) int { return e.Step })
}

// First decodes the field with the smallest step.
func (s *Stack) First() (*field.Field, error) {
	if len(s.Entries) == 0 {
		return nil, fmt.Errorf("stack %q: no field files", s.Dir)
	}

	return s.Field(0)
}

// StepName formats the file name of step, zero-padded to two digits.
func StepName(step int, compressed bool) string {
	if compressed {
		return fmt.Sprintf("%02d%s", step, ExtNpyZst)
	}

	return fmt.Sprintf("%02d%s", step, ExtNpy)
}
