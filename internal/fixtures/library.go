package fixtures

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"

	"walkthrough/internal/scenario"
)

// Sentinel errors for scenario lookup.
var (
	// ErrScenarioNotFound indicates no scenario with the requested id exists.
	ErrScenarioNotFound = errors.New("scenario not found")

	// ErrDuplicateScenario indicates two scenarios share an id.
	ErrDuplicateScenario = errors.New("duplicate scenario id")
)

// Library is an ordered collection of scenarios keyed by id.
type Library struct {
	order []string
	byID  map[string]*scenario.Scenario
}

// NewLibrary creates a [Library] holding scenarios in the given order.
func NewLibrary(scenarios ...*scenario.Scenario) (*Library, error) {
	l := &Library{byID: make(map[string]*scenario.Scenario, len(scenarios))}
	for _, s := range scenarios {
		if err := l.Add(s); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Add appends s. Returns [ErrDuplicateScenario] if its id is already present.
func (l *Library) Add(s *scenario.Scenario) error {
	if _, ok := l.byID[s.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateScenario, s.ID)
	}
	l.byID[s.ID] = s
	l.order = append(l.order, s.ID)
	return nil
}

// Merge adds every scenario of other, stopping at the first duplicate.
func (l *Library) Merge(other *Library) error {
	for _, s := range other.List() {
		if err := l.Add(s); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the scenario with the given id or [ErrScenarioNotFound].
func (l *Library) Get(id string) (*scenario.Scenario, error) {
	s, ok := l.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrScenarioNotFound, id)
	}
	return s, nil
}

// List returns the scenarios in insertion order.
func (l *Library) List() []*scenario.Scenario {
	out := make([]*scenario.Scenario, len(l.order))
	for i, id := range l.order {
		out[i] = l.byID[id]
	}
	return out
}

// IDs returns the scenario ids in insertion order.
func (l *Library) IDs() []string {
	return append([]string(nil), l.order...)
}

// Len returns the number of scenarios.
func (l *Library) Len() int {
	return len(l.order)
}

// LoadDir loads every *.yaml and *.yml document in dir, sorted by file name.
//
// Unlike the built-in set, a bad document fails the whole load; the error
// names the offending file.
func LoadDir(dir string) (*Library, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("failed to read scenario directory: %w", err)
	}
	return loadFS(os.DirFS(dir), ".")
}

func loadFS(fsys fs.FS, dir string) (*Library, error) {
	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := fs.Glob(fsys, joinPattern(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to list scenarios: %w", err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	l, _ := NewLibrary()
	for _, file := range files {
		s, err := ReadFromFS(fsys, file)
		if err != nil {
			return nil, err
		}
		if err := l.Add(s); err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		slog.Debug("scenario loaded", "file", file, "scenario", s.ID, "stages", s.Catalog.Len(), "threats", s.Threats.Len())
	}
	return l, nil
}

func joinPattern(dir, pattern string) string {
	if dir == "." || dir == "" {
		return pattern
	}
	return dir + "/" + pattern
}
