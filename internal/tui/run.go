package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"walkthrough/internal/scenario"
)

// Run starts an interactive session over ctrl and blocks until the user quits.
func Run(ctrl *scenario.Controller, opts Options) error {
	program := tea.NewProgram(New(ctrl, opts), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run walkthrough: %w", err)
	}
	return nil
}
