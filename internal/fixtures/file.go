// Package fixtures loads scenario configuration from YAML documents and CSV
// threat sheets, and ships the built-in scenarios.
//
// A scenario document looks like:
//
//	id: email
//	title: Email Assistant
//	description: Draft a polite follow-up email.
//	transcript:
//	  - role: user
//	    content: Draft a polite follow-up email regarding the meeting.
//	stages:
//	  - id: prompt-parsing
//	    title: Prompt Parsing
//	    short_description: Analyzing user intent
//	    summary: "Identified: Email drafting task"
//	    detail_points: [...]
//	    technical_note: ...
//	    illustration: {src: images/parse.png, alt: Tokens}
//	threats:
//	  - stage: prompt-parsing
//	    title: Prompt Injection
//	    severity: high
//	threats_file: threats.csv   # optional, relative to the document
//
// Key types:
//   - [Library] - ordered set of validated scenarios
//   - [Takeaway] - one entry of the completion checklist
package fixtures

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"walkthrough/internal/pipeline"
	"walkthrough/internal/scenario"
	"walkthrough/internal/threat"
)

// scenarioFile is the raw YAML structure of a scenario document.
type scenarioFile struct {
	ID          string        `yaml:"id"`
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Transcript  []messageFile `yaml:"transcript"`
	Stages      []stageFile   `yaml:"stages"`
	Threats     []threatFile  `yaml:"threats"`
	ThreatsFile string        `yaml:"threats_file"`
}

type messageFile struct {
	Role    string `yaml:"role"`
	Content string `yaml:"content"`
}

type stageFile struct {
	ID               string            `yaml:"id"`
	Title            string            `yaml:"title"`
	ShortDescription string            `yaml:"short_description"`
	Summary          string            `yaml:"summary"`
	DetailPoints     []string          `yaml:"detail_points"`
	TechnicalNote    string            `yaml:"technical_note"`
	Illustration     *illustrationFile `yaml:"illustration"`
}

type illustrationFile struct {
	Src string `yaml:"src"`
	Alt string `yaml:"alt"`
}

type threatFile struct {
	Stage       string `yaml:"stage"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Example     string `yaml:"example"`
	Severity    string `yaml:"severity"`
}

// ReadFromFile reads and validates a scenario document from disk. A
// threats_file entry is resolved relative to the document's directory.
func ReadFromFile(p string) (*scenario.Scenario, error) {
	return ReadFromFS(os.DirFS(filepath.Dir(p)), filepath.Base(p))
}

// ReadFromFS reads and validates the scenario document name from fsys.
func ReadFromFS(fsys fs.FS, name string) (*scenario.Scenario, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}

	s, err := parse(data, fsys, path.Dir(name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return s, nil
}

// ReadFromBytes parses a scenario document held in memory. Documents with a
// threats_file entry must be loaded with [ReadFromFile] or [ReadFromFS].
func ReadFromBytes(data []byte) (*scenario.Scenario, error) {
	return parse(data, nil, "")
}

func parse(data []byte, fsys fs.FS, dir string) (*scenario.Scenario, error) {
	var raw scenarioFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	def := scenario.Definition{
		ID:          raw.ID,
		Title:       raw.Title,
		Description: raw.Description,
	}

	for i, m := range raw.Transcript {
		role := scenario.Role(m.Role)
		if role != scenario.RoleUser && role != scenario.RoleAssistant {
			return nil, fmt.Errorf("transcript message %d has invalid role %q", i, m.Role)
		}
		def.Transcript = append(def.Transcript, scenario.Message{Role: role, Content: m.Content})
	}

	for _, st := range raw.Stages {
		stage := pipeline.Stage{
			ID:               st.ID,
			Title:            st.Title,
			ShortDescription: st.ShortDescription,
			Summary:          st.Summary,
			DetailPoints:     st.DetailPoints,
			TechnicalNote:    st.TechnicalNote,
		}
		if st.Illustration != nil && st.Illustration.Src != "" {
			stage.Illustration = &pipeline.Illustration{Src: st.Illustration.Src, Alt: st.Illustration.Alt}
		}
		def.Stages = append(def.Stages, stage)
	}

	for i, th := range raw.Threats {
		sev, err := threat.ParseSeverity(th.Severity)
		if err != nil {
			return nil, fmt.Errorf("threat %d (%q): %w", i, th.Title, err)
		}
		def.Threats = append(def.Threats, threat.Record{
			StageID:     th.Stage,
			Title:       th.Title,
			Description: th.Description,
			Example:     th.Example,
			Severity:    sev,
		})
	}

	if raw.ThreatsFile != "" {
		if fsys == nil {
			return nil, fmt.Errorf("threats_file %q cannot be resolved without a directory", raw.ThreatsFile)
		}
		records, err := readThreatSheet(fsys, path.Join(dir, raw.ThreatsFile))
		if err != nil {
			return nil, err
		}
		def.Threats = append(def.Threats, records...)
	}

	return scenario.New(def)
}

func readThreatSheet(fsys fs.FS, name string) ([]threat.Record, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open threat sheet: %w", err)
	}
	defer f.Close()

	records, err := ReadThreatsCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return records, nil
}
