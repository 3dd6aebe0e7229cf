package cli

import "github.com/spf13/cobra"

func newListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Printer.ScenarioList(app.Library.List())
			return nil
		},
	}
}
