package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"walkthrough/internal/config"
	"walkthrough/internal/fixtures"
	"walkthrough/internal/output"
	"walkthrough/internal/scenario"
	"walkthrough/internal/tui"
)

// MockInteractive records interactive sessions instead of running them.
type MockInteractive struct {
	// Sessions records the controller of every started session in order.
	Sessions []*scenario.Controller
	// Options records the options passed with each session.
	Options []tui.Options
	// Err is returned from every call.
	Err error
}

func (m *MockInteractive) Run(ctrl *scenario.Controller, opts tui.Options) error {
	m.Sessions = append(m.Sessions, ctrl)
	m.Options = append(m.Options, opts)
	return m.Err
}

// MockPicker returns a fixed choice and records the offered scenarios.
type MockPicker struct {
	Choice string
	Err    error
	Calls  []struct {
		IDs       []string
		DefaultID string
	}
}

func (m *MockPicker) Pick(list []*scenario.Scenario, defaultID string) (string, error) {
	ids := make([]string, len(list))
	for i, s := range list {
		ids[i] = s.ID
	}
	m.Calls = append(m.Calls, struct {
		IDs       []string
		DefaultID string
	}{ids, defaultID})

	if m.Err != nil {
		return "", m.Err
	}
	return m.Choice, nil
}

// newTestApp creates an App over the built-in scenarios with output captured in buf.
func newTestApp(t *testing.T, buf *bytes.Buffer) (*App, *MockInteractive, *MockPicker) {
	t.Helper()

	lib, err := fixtures.Builtin()
	if err != nil {
		t.Fatalf("failed to load built-in scenarios: %v", err)
	}

	interactive := &MockInteractive{}
	picker := &MockPicker{Choice: "email"}
	app := &App{
		Config:      config.DefaultConfig(),
		Library:     lib,
		Printer:     output.NewPrinterWithWriter(buf),
		Interactive: interactive.Run,
		Pick:        picker.Pick,
	}
	return app, interactive, picker
}

// execute runs args against app and returns the command error.
func execute(app *App, args ...string) error {
	rootCmd := NewRootCommand(app)
	outBuf := &bytes.Buffer{}
	rootCmd.SetOut(outBuf)
	rootCmd.SetErr(outBuf)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// createScenarioFile writes a scenario YAML document into dir.
func createScenarioFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create scenario directory: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write scenario file: %v", err)
	}
	return path
}

const customScenarioYAML = `id: custom
title: Custom Scenario
description: A two stage pipeline.
stages:
  - id: parse
    title: Parse
    summary: parsed
  - id: answer
    title: Answer
    summary: answered
threats:
  - stage: answer
    title: Leak
    severity: low
`
