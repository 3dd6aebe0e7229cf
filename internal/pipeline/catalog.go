// Package pipeline defines the fixed, ordered stages of a simulated AI request
// pipeline and the display status each stage derives from the current position.
//
// A [Catalog] is built once per scenario and never changes afterwards. Stage
// order is significant: it drives the status derivation in [StatusAt] and the
// navigation bounds enforced by the sequencer package.
//
// Key types:
//   - [Stage] - one step of the pipeline with its narrative and detail content
//   - [Catalog] - ordered, immutable list of stages with id lookup
//   - [Status] - derived display state (complete, active, pending)
package pipeline

import (
	"errors"
	"fmt"
	"slices"
)

// Sentinel errors for catalog construction.
var (
	// ErrEmptyCatalog indicates a catalog was built with no stages. A pipeline
	// needs at least one stage for the current position to be valid.
	ErrEmptyCatalog = errors.New("catalog has no stages")

	// ErrMissingStageID indicates a stage was defined without an id.
	ErrMissingStageID = errors.New("stage id is required")

	// ErrDuplicateStage indicates two stages share the same id.
	ErrDuplicateStage = errors.New("duplicate stage id")
)

// Catalog is the ordered, immutable list of stages for one scenario.
//
// Create with [NewCatalog]. Accessors return copies so callers cannot mutate
// the catalog through returned values.
type Catalog struct {
	// stages holds the pipeline in execution order.
	stages []Stage

	// index maps stage id → position in stages.
	index map[string]int
}

// NewCatalog validates the stages and returns a [Catalog] preserving their order.
//
// Returns [ErrEmptyCatalog] when stages is empty, [ErrMissingStageID] when a
// stage has no id and [ErrDuplicateStage] when an id appears twice.
func NewCatalog(stages []Stage) (*Catalog, error) {
	if len(stages) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		stages: make([]Stage, 0, len(stages)),
		index:  make(map[string]int, len(stages)),
	}
	for i, s := range stages {
		if s.ID == "" {
			return nil, fmt.Errorf("stage at index %d: %w", i, ErrMissingStageID)
		}
		if prev, ok := c.index[s.ID]; ok {
			return nil, fmt.Errorf("%w: %q at index %d and %d", ErrDuplicateStage, s.ID, prev, i)
		}
		c.index[s.ID] = i
		c.stages = append(c.stages, s.clone())
	}

	return c, nil
}

// Len returns the number of stages.
func (c *Catalog) Len() int {
	return len(c.stages)
}

// At returns the stage at position i. The second result is false when i is
// outside [0, Len()-1].
func (c *Catalog) At(i int) (Stage, bool) {
	if i < 0 || i >= len(c.stages) {
		return Stage{}, false
	}
	return c.stages[i].clone(), true
}

// Stage returns the stage with the given id.
func (c *Catalog) Stage(id string) (Stage, bool) {
	i, ok := c.index[id]
	if !ok {
		return Stage{}, false
	}
	return c.stages[i].clone(), true
}

// IndexOf returns the position of the stage with the given id.
func (c *Catalog) IndexOf(id string) (int, bool) {
	i, ok := c.index[id]
	return i, ok
}

// Has reports whether a stage with the given id exists.
func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Stages returns a copy of every stage in order.
func (c *Catalog) Stages() []Stage {
	out := make([]Stage, len(c.stages))
	for i, s := range c.stages {
		out[i] = s.clone()
	}
	return out
}

// IDs returns the stage ids in order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.stages))
	for i, s := range c.stages {
		ids[i] = s.ID
	}
	return ids
}

func (s Stage) clone() Stage {
	s.DetailPoints = slices.Clone(s.DetailPoints)
	if s.Illustration != nil {
		ill := *s.Illustration
		s.Illustration = &ill
	}
	return s
}
