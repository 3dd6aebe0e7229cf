// Package threat indexes security-threat annotations by pipeline stage.
//
// An [Index] is built once per scenario from a list of [Record] values and a
// stage lookup. Construction rejects records that reference unknown stages or
// carry an unknown severity, so configuration mistakes surface at load time
// instead of silently dropping annotations.
//
// The index performs lookups only. Whether a stage's threats may be shown
// (pending stages never reveal them) is decided by the scenario controller.
package threat

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for index construction.
var (
	// ErrInvalidReference indicates a record whose StageID is not in the catalog.
	ErrInvalidReference = errors.New("threat references unknown stage")

	// ErrInvalidSeverity indicates a severity outside {high, medium, low}.
	ErrInvalidSeverity = errors.New("invalid severity")
)

// Severity is the closed set of threat severities.
type Severity string

// Severity values.
const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Severities lists every severity from most to least severe.
var Severities = []Severity{SeverityHigh, SeverityMedium, SeverityLow}

// ParseSeverity converts a case-insensitive string into a [Severity].
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(strings.ToLower(strings.TrimSpace(s)))
	if !sev.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSeverity, s)
	}
	return sev, nil
}

// IsValid returns true if the severity is one of the recognized values.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityHigh, SeverityMedium, SeverityLow:
		return true
	default:
		return false
	}
}

// Rank orders severities: high is 3, medium 2, low 1, anything else 0.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Record is a security annotation attached to one stage.
type Record struct {
	// StageID is the id of the stage this threat applies to.
	StageID string

	// Title names the threat (e.g., "Prompt Injection").
	Title string

	// Description explains the threat in one sentence.
	Description string

	// Example is a concrete instance of the threat.
	Example string

	// Severity is one of high, medium or low.
	Severity Severity
}

// StageLookup reports whether a stage id exists. [pipeline.Catalog] satisfies it.
type StageLookup interface {
	Has(id string) bool
}

// Index maps stage ids to their threat records in registration order.
type Index struct {
	records []Record
	byStage map[string][]int
}

// NewIndex validates records against stages and builds an [Index].
//
// Returns an error wrapping [ErrInvalidReference] for a dangling StageID and
// [ErrInvalidSeverity] for an unknown severity. No partial index is returned.
func NewIndex(stages StageLookup, records []Record) (*Index, error) {
	idx := &Index{
		records: make([]Record, 0, len(records)),
		byStage: make(map[string][]int),
	}

	for i, r := range records {
		if !stages.Has(r.StageID) {
			return nil, fmt.Errorf("%w: record %d (%q) references %q", ErrInvalidReference, i, r.Title, r.StageID)
		}
		if !r.Severity.IsValid() {
			return nil, fmt.Errorf("%w: record %d (%q) has severity %q", ErrInvalidSeverity, i, r.Title, r.Severity)
		}
		idx.byStage[r.StageID] = append(idx.byStage[r.StageID], len(idx.records))
		idx.records = append(idx.records, r)
	}

	return idx, nil
}

// ThreatsFor returns the records registered for stageID in registration order.
// The result is empty, never nil, when the stage has no threats.
func (x *Index) ThreatsFor(stageID string) []Record {
	positions := x.byStage[stageID]
	out := make([]Record, len(positions))
	for i, p := range positions {
		out[i] = x.records[p]
	}
	return out
}

// Len returns the total number of records.
func (x *Index) Len() int {
	return len(x.records)
}

// All returns a copy of every record in registration order.
func (x *Index) All() []Record {
	out := make([]Record, len(x.records))
	copy(out, x.records)
	return out
}

// CountBySeverity returns how many records carry each severity.
func (x *Index) CountBySeverity() map[Severity]int {
	counts := make(map[Severity]int, len(Severities))
	for _, r := range x.records {
		counts[r.Severity]++
	}
	return counts
}
