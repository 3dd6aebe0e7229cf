package pipeline

// Status is the display state a stage derives from the current position.
//
// Status is never stored; compute it with [StatusAt].
type Status string

// Status values. Every stage has exactly one of these relative to the current index.
const (
	// StatusComplete marks stages before the current one.
	StatusComplete Status = "complete"

	// StatusActive marks the current stage.
	StatusActive Status = "active"

	// StatusPending marks stages not yet reached.
	StatusPending Status = "pending"
)

// StatusAt derives the status of the stage at index relative to current.
// The result is purely positional; no stage is ever skipped.
func StatusAt(index, current int) Status {
	switch {
	case index < current:
		return StatusComplete
	case index == current:
		return StatusActive
	default:
		return StatusPending
	}
}

// IsValid returns true if the status is one of the recognized values.
func (s Status) IsValid() bool {
	switch s {
	case StatusComplete, StatusActive, StatusPending:
		return true
	default:
		return false
	}
}

// Reached reports whether a stage with this status has been reached, i.e. is
// active or complete. Summaries, threats and detail views are only revealed
// for reached stages.
func (s Status) Reached() bool {
	return s == StatusActive || s == StatusComplete
}
