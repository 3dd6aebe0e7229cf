package cli

import (
	"os"

	"github.com/spf13/cobra"

	"walkthrough/internal/fixtures"
	"walkthrough/internal/scenario"
)

func newValidateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file|dir>",
		Short: "Check scenario fixture files",
		Long: `Load a scenario YAML file, or every *.yaml/*.yml file in a directory,
and report stage and threat counts. Unknown stage references and
invalid severities are reported as errors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			info, err := os.Stat(path)
			if err != nil {
				app.Printer.Error("%v", err)
				return NewExitError(1)
			}

			var list []*scenario.Scenario
			if info.IsDir() {
				lib, err := fixtures.LoadDir(path)
				if err != nil {
					app.Printer.Error("%v", err)
					return NewExitError(1)
				}
				list = lib.List()
			} else {
				s, err := fixtures.ReadFromFile(path)
				if err != nil {
					app.Printer.Error("%v", err)
					return NewExitError(1)
				}
				list = []*scenario.Scenario{s}
			}

			app.Printer.ValidationResult(path, list)
			return nil
		},
	}
}
