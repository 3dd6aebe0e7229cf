// Package scenario composes a stage catalog, a threat index and a sequencer
// into the single integration point used by presentation code.
//
// A [Scenario] is the static configuration of one walkthrough (pipeline stages,
// threat annotations, the chat transcript the pipeline produced). A [Controller]
// is one session over a scenario: it owns the current-stage pointer, the two
// visibility flags and the open detail view, and it enforces the reveal rules:
//   - threats are visible only for reached stages and only with security shown
//   - detail views can only be opened for reached stages ([ErrStageNotReached])
//   - any navigation closes the open detail view
//
// Key types:
//   - [Scenario] - validated scenario configuration
//   - [Controller] - one session's state and operations
//   - [ViewModel] - immutable snapshot handed to renderers
//   - [Action] - host-level navigation vocabulary for [Controller.Dispatch]
package scenario

import (
	"errors"
	"fmt"

	"walkthrough/internal/pipeline"
	"walkthrough/internal/threat"
)

// ErrMissingScenarioID indicates a scenario definition without an id.
var ErrMissingScenarioID = errors.New("scenario id is required")

// Role identifies the speaker of a transcript message.
type Role string

// Transcript roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of the conversation shown beside the pipeline.
type Message struct {
	Role    Role
	Content string
}

// Definition is the raw, unvalidated description of a scenario.
type Definition struct {
	ID          string
	Title       string
	Description string
	Transcript  []Message
	Stages      []pipeline.Stage
	Threats     []threat.Record
}

// Scenario is a validated, immutable scenario configuration.
type Scenario struct {
	ID          string
	Title       string
	Description string
	Transcript  []Message

	// Catalog is the ordered pipeline for this scenario.
	Catalog *pipeline.Catalog

	// Threats holds the security annotations keyed by stage id.
	Threats *threat.Index
}

// New validates def and builds a [Scenario].
//
// Stage and threat validation errors from the pipeline and threat packages are
// wrapped with the scenario id, so [errors.Is] still matches their sentinels.
func New(def Definition) (*Scenario, error) {
	if def.ID == "" {
		return nil, ErrMissingScenarioID
	}

	catalog, err := pipeline.NewCatalog(def.Stages)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", def.ID, err)
	}

	index, err := threat.NewIndex(catalog, def.Threats)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", def.ID, err)
	}

	transcript := make([]Message, len(def.Transcript))
	copy(transcript, def.Transcript)

	return &Scenario{
		ID:          def.ID,
		Title:       def.Title,
		Description: def.Description,
		Transcript:  transcript,
		Catalog:     catalog,
		Threats:     index,
	}, nil
}
