package fixtures

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walkthrough/internal/pipeline"
	"walkthrough/internal/scenario"
	"walkthrough/internal/threat"
)

const minimalScenario = `
id: demo
title: Demo
description: Two stage demo
transcript:
  - role: user
    content: hello
  - role: assistant
    content: hi
stages:
  - id: parse
    title: Parse
    summary: parsed
    detail_points: [one, two]
    technical_note: note
    illustration:
      src: parse.png
      alt: Parse diagram
  - id: generate
    title: Generate
threats:
  - stage: parse
    title: Prompt Injection
    severity: high
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestReadFromBytes(t *testing.T) {
	s, err := ReadFromBytes([]byte(minimalScenario))
	require.NoError(t, err)

	assert.Equal(t, "demo", s.ID)
	assert.Equal(t, "Demo", s.Title)
	require.Len(t, s.Transcript, 2)
	assert.Equal(t, scenario.RoleUser, s.Transcript[0].Role)
	assert.Equal(t, []string{"parse", "generate"}, s.Catalog.IDs())

	parse, ok := s.Catalog.Stage("parse")
	require.True(t, ok)
	assert.Equal(t, []string{"one", "two"}, parse.DetailPoints)
	require.NotNil(t, parse.Illustration)
	assert.Equal(t, "parse.png", parse.Illustration.Src)

	gen, _ := s.Catalog.Stage("generate")
	assert.Nil(t, gen.Illustration)

	threats := s.Threats.ThreatsFor("parse")
	require.Len(t, threats, 1)
	assert.Equal(t, threat.SeverityHigh, threats[0].Severity)
}

func TestReadFromBytes_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
		wantMsg string
	}{
		{
			name:    "malformed yaml",
			doc:     "id: [unterminated",
			wantMsg: "failed to parse scenario",
		},
		{
			name:    "dangling threat",
			doc:     "id: x\nstages:\n  - id: a\nthreats:\n  - stage: b\n    title: t\n    severity: low\n",
			wantErr: threat.ErrInvalidReference,
		},
		{
			name:    "bad severity",
			doc:     "id: x\nstages:\n  - id: a\nthreats:\n  - stage: a\n    title: t\n    severity: severe\n",
			wantErr: threat.ErrInvalidSeverity,
		},
		{
			name:    "no stages",
			doc:     "id: x\n",
			wantErr: pipeline.ErrEmptyCatalog,
		},
		{
			name:    "missing id",
			doc:     "stages:\n  - id: a\n",
			wantErr: scenario.ErrMissingScenarioID,
		},
		{
			name:    "bad role",
			doc:     "id: x\ntranscript:\n  - role: system\n    content: hi\nstages:\n  - id: a\n",
			wantMsg: "invalid role",
		},
		{
			name:    "threats file without directory",
			doc:     "id: x\nstages:\n  - id: a\nthreats_file: t.csv\n",
			wantMsg: "cannot be resolved",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ReadFromBytes([]byte(tt.doc))
			require.Error(t, err)
			assert.Nil(t, s)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestReadFromFile_WithThreatSheet(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "threats.csv", "stage,title,severity\ngenerate,Model Poisoning,medium\n")
	p := writeFile(t, dir, "demo.yaml", minimalScenario+"threats_file: threats.csv\n")

	s, err := ReadFromFile(p)
	require.NoError(t, err)

	all := s.Threats.All()
	require.Len(t, all, 2, "inline threats come first, then the sheet")
	assert.Equal(t, "Prompt Injection", all[0].Title)
	assert.Equal(t, "Model Poisoning", all[1].Title)
	assert.Equal(t, threat.SeverityMedium, all[1].Severity)
}

func TestReadFromFile_Errors(t *testing.T) {
	_, err := ReadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario")

	dir := t.TempDir()
	p := writeFile(t, dir, "demo.yaml", minimalScenario+"threats_file: absent.csv\n")
	_, err = ReadFromFile(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open threat sheet")
	assert.Contains(t, err.Error(), "demo.yaml")
}

func TestReadThreatsCSV(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "valid_threats.csv"))
	require.NoError(t, err)
	defer f.Close()

	records, err := ReadThreatsCSV(f)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, threat.Record{
		StageID:     "parse",
		Title:       "Prompt Injection",
		Description: "Hidden instructions",
		Example:     "Ignore previous instructions",
		Severity:    threat.SeverityHigh,
	}, records[0])
	assert.Equal(t, threat.SeverityLow, records[1].Severity)
}

func TestReadThreatsCSV_Minimal(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "minimal_threats.csv"))
	require.NoError(t, err)
	defer f.Close()

	records, err := ReadThreatsCSV(f)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "parse", records[0].StageID)
	assert.Equal(t, threat.SeverityMedium, records[0].Severity)
	assert.Empty(t, records[0].Description)
	assert.Empty(t, records[0].Example)
}

func TestReadThreatsCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		input   string
		wantMsg string
	}{
		{name: "missing column", file: "missing_column.csv", wantMsg: "missing required column: severity"},
		{name: "bad severity", file: "bad_severity.csv", wantMsg: "line 2"},
		{name: "empty input", input: "", wantMsg: "failed to read threat sheet header"},
		{name: "empty stage", input: "stage,title,severity\n,t,low\n", wantMsg: "stage is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				records []threat.Record
				err     error
			)
			if tt.file != "" {
				f, openErr := os.Open(filepath.Join("testdata", tt.file))
				require.NoError(t, openErr)
				defer f.Close()
				records, err = ReadThreatsCSV(f)
			} else {
				records, err = ReadThreatsCSV(strings.NewReader(tt.input))
			}
			require.Error(t, err)
			assert.Nil(t, records)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.yaml", strings.Replace(minimalScenario, "id: demo", "id: second", 1))
	writeFile(t, dir, "a.yml", minimalScenario)
	writeFile(t, dir, "notes.txt", "ignored")

	l, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"demo", "second"}, l.IDs(), "files load in name order")
}

func TestLoadDir_Errors(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario directory")

	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", minimalScenario)
	writeFile(t, dir, "b.yaml", minimalScenario)
	_, err = LoadDir(dir)
	assert.ErrorIs(t, err, ErrDuplicateScenario)

	bad := t.TempDir()
	writeFile(t, bad, "broken.yaml", "id: x\n")
	_, err = LoadDir(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")
}

func TestLibrary(t *testing.T) {
	a, err := ReadFromBytes([]byte(minimalScenario))
	require.NoError(t, err)
	b, err := ReadFromBytes([]byte(strings.Replace(minimalScenario, "id: demo", "id: other", 1)))
	require.NoError(t, err)

	l, err := NewLibrary(a)
	require.NoError(t, err)

	other, err := NewLibrary(b)
	require.NoError(t, err)
	require.NoError(t, l.Merge(other))

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, []string{"demo", "other"}, l.IDs())

	got, err := l.Get("other")
	require.NoError(t, err)
	assert.Same(t, b, got)

	_, err = l.Get("missing")
	assert.ErrorIs(t, err, ErrScenarioNotFound)

	assert.ErrorIs(t, l.Add(a), ErrDuplicateScenario)
	_, err = NewLibrary(a, a)
	assert.ErrorIs(t, err, ErrDuplicateScenario)
}

func TestBuiltin(t *testing.T) {
	l, err := Builtin()
	require.NoError(t, err)
	assert.Equal(t, []string{"email", "spreadsheet", "research"}, l.IDs())

	wantStages := []string{"prompt-parsing", "context-assembly", "api-tools", "vector-lookup", "llm-generation", "post-processing"}
	for _, s := range l.List() {
		t.Run(s.ID, func(t *testing.T) {
			assert.NotEmpty(t, s.Title)
			assert.Len(t, s.Transcript, 2)
			assert.Equal(t, wantStages, s.Catalog.IDs())
			assert.Equal(t, 5, s.Threats.Len())
			assert.Empty(t, s.Threats.ThreatsFor("vector-lookup"))
			for _, st := range s.Catalog.Stages() {
				assert.NotEmpty(t, st.Summary, "stage %s", st.ID)
				assert.NotEmpty(t, st.DetailPoints, "stage %s", st.ID)
			}
		})
	}

	sheet, err := l.Get("spreadsheet")
	require.NoError(t, err)
	tools := sheet.Threats.ThreatsFor("api-tools")
	require.Len(t, tools, 1)
	assert.Equal(t, "Tool Misuse", tools[0].Title)
}

func TestTakeaways(t *testing.T) {
	items, err := Takeaways()
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, "Understand the AI Stack", items[0].Title)
	for _, it := range items {
		assert.NotEmpty(t, it.Description)
	}
}
