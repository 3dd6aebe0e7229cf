package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"walkthrough/internal/scenario"
)

// ErrPickerAborted is returned when the user cancels the scenario picker.
var ErrPickerAborted = errors.New("scenario selection aborted")

// buildPickerForm builds the scenario select form, writing the choice to selected.
func buildPickerForm(list []*scenario.Scenario, selected *string) *huh.Form {
	options := make([]huh.Option[string], 0, len(list))
	for _, s := range list {
		label := s.Title
		if s.Description != "" {
			label = fmt.Sprintf("%s - %s", s.Title, s.Description)
		}
		options = append(options, huh.NewOption(label, s.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose a scenario").
				Description("Each scenario walks one prompt through the AI pipeline.").
				Key("scenario").
				Options(options...).
				Value(selected),
		),
	)
}

// PickScenario asks the user to choose one of list. defaultID is preselected
// when present.
func PickScenario(list []*scenario.Scenario, defaultID string) (string, error) {
	if len(list) == 0 {
		return "", errors.New("no scenarios to choose from")
	}

	selected := list[0].ID
	for _, s := range list {
		if s.ID == defaultID {
			selected = defaultID
		}
	}

	if err := buildPickerForm(list, &selected).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrPickerAborted
		}
		return "", fmt.Errorf("failed to run scenario picker: %w", err)
	}
	return selected, nil
}
