// SPDX-License-Identifier: MIT

package threshold

import "github.com/katalvlaran/difftrace/field"

// Frame is one in-memory stack entry.
type Frame struct {
	Step  int
	Field *field.Field
}

// Frames is an in-memory Source, handy for synthetic stacks.
type Frames []Frame

var _ Source = Frames(nil)

// Len implements Source.
func (fs Frames) Len() int { return len(fs) }

// Step implements Source.
func (fs Frames) Step(i int) int { return fs[i].Step }

// Field implements Source.
func (fs Frames) Field(i int) (*field.Field, error) {
	if fs[i].Field == nil {
		return nil, field.ErrNilField
	}

	return fs[i].Field, nil
}
