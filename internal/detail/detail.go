// Package detail builds the expanded, on-demand view of a single stage.
//
// [Resolve] is a pure function: it holds no state between calls and the same
// stage always yields an equal [Payload], so results may be memoized by stage id.
package detail

import (
	"slices"

	"walkthrough/internal/pipeline"
)

// Payload is the content of a stage's detail view.
type Payload struct {
	// StageID identifies the stage the payload was resolved for.
	StageID string

	// Title is the stage title.
	Title string

	// Points are the stage's detail points in order. Empty when the stage has
	// none; the presenter decides whether to render an empty list.
	Points []string

	// TechnicalNote is the technical footnote.
	TechnicalNote string

	// Illustration is the stage image or [pipeline.NoIllustration].
	Illustration pipeline.Illustration
}

// Resolve produces the detail payload for stage. It never fails.
func Resolve(stage pipeline.Stage) Payload {
	p := Payload{
		StageID:       stage.ID,
		Title:         stage.Title,
		Points:        slices.Clone(stage.DetailPoints),
		TechnicalNote: stage.TechnicalNote,
		Illustration:  pipeline.NoIllustration,
	}
	if p.Points == nil {
		p.Points = []string{}
	}
	if stage.Illustration != nil {
		p.Illustration = *stage.Illustration
	}
	return p
}

// IsEmpty reports whether the payload carries no points and no technical note.
func (p Payload) IsEmpty() bool {
	return len(p.Points) == 0 && p.TechnicalNote == ""
}
