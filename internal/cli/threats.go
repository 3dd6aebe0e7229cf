package cli

import "github.com/spf13/cobra"

func newThreatsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "threats <scenario-id>",
		Short: "List every threat of a scenario by stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.lookup(args[0])
			if err != nil {
				return err
			}
			app.Printer.ThreatReport(s)
			return nil
		},
	}
}
