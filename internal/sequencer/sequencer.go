// Package sequencer tracks the current stage of a fixed pipeline.
//
// The [Sequencer] holds a single pointer bounded to [0, stageCount-1] and
// derives every stage's [pipeline.Status] from it. The pointer changes only
// through [Sequencer.GoTo], [Sequencer.Next] and [Sequencer.Previous]:
//   - GoTo rejects targets outside the bounds with [ErrOutOfRange]
//   - Next and Previous clamp at the edges and are no-ops there
//
// A [ChangeCallback] can be registered to observe successful moves; the
// scenario controller uses it to invalidate an open detail view.
package sequencer

import (
	"errors"
	"fmt"

	"walkthrough/internal/pipeline"
)

// Sentinel errors for sequencing.
var (
	// ErrOutOfRange indicates a navigation target outside [0, stageCount-1].
	// The sequencer state is unchanged when this is returned.
	ErrOutOfRange = errors.New("stage index out of range")

	// ErrNoStages indicates a sequencer was requested for an empty pipeline.
	ErrNoStages = errors.New("sequencer needs at least one stage")
)

// ChangeCallback is invoked after the pointer moves.
//
// It receives the previous and the new index. GoTo to the current index still
// counts as a successful move; Next and Previous at an edge do not.
type ChangeCallback func(previous, current int)

// Sequencer holds the current stage index of one scenario session.
//
// It is not safe for concurrent use; a session owns its sequencer exclusively.
type Sequencer struct {
	count    int
	current  int
	onChange ChangeCallback
}

// New creates a [Sequencer] for a pipeline of stageCount stages, positioned
// at stage 0.
func New(stageCount int) (*Sequencer, error) {
	if stageCount < 1 {
		return nil, ErrNoStages
	}
	return &Sequencer{count: stageCount}, nil
}

// SetChangeCallback registers cb to be called after every successful move.
// Passing nil removes the callback.
func (s *Sequencer) SetChangeCallback(cb ChangeCallback) {
	s.onChange = cb
}

// Current returns the current stage index.
func (s *Sequencer) Current() int {
	return s.current
}

// Len returns the number of stages.
func (s *Sequencer) Len() int {
	return s.count
}

// Status derives the status of the stage at index from the current pointer.
func (s *Sequencer) Status(index int) pipeline.Status {
	return pipeline.StatusAt(index, s.current)
}

// InRange reports whether index is a valid stage position.
func (s *Sequencer) InRange(index int) bool {
	return index >= 0 && index < s.count
}

// GoTo moves the pointer to index.
//
// Returns an error wrapping [ErrOutOfRange] when index is not in
// [0, stageCount-1]; the pointer is left unchanged in that case.
func (s *Sequencer) GoTo(index int) error {
	if !s.InRange(index) {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrOutOfRange, index, s.count-1)
	}
	s.move(index)
	return nil
}

// Next advances one stage. At the last stage it does nothing.
func (s *Sequencer) Next() {
	if s.IsTerminal() {
		return
	}
	s.move(s.current + 1)
}

// Previous steps back one stage. At the first stage it does nothing.
func (s *Sequencer) Previous() {
	if s.current == 0 {
		return
	}
	s.move(s.current - 1)
}

// IsTerminal reports whether the last stage is current.
func (s *Sequencer) IsTerminal() bool {
	return s.current == s.count-1
}

func (s *Sequencer) move(index int) {
	prev := s.current
	s.current = index
	if s.onChange != nil {
		s.onChange(prev, index)
	}
}
