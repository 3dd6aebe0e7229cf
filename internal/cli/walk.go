package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"walkthrough/internal/fixtures"
	"walkthrough/internal/output"
	"walkthrough/internal/tui"
)

func newWalkCommand(app *App) *cobra.Command {
	var (
		hood     bool
		security bool
	)

	cmd := &cobra.Command{
		Use:   "walk [scenario-id]",
		Short: "Step through a scenario interactively",
		Long: `Open the interactive walkthrough. Without a scenario id a picker is shown.

Keys:
  →/l/n  next stage          ←/h/p  previous stage
  1-9    jump to stage       enter  open details
  esc    close details       y      copy details
  u      under the hood      s      security overlay
  q      quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id string
			if len(args) == 1 {
				id = args[0]
			} else {
				picked, err := app.Pick(app.Library.List(), app.Config.Scenarios.Default)
				if errors.Is(err, tui.ErrPickerAborted) {
					return nil
				}
				if err != nil {
					app.Printer.Error("%v", err)
					return NewExitError(1)
				}
				id = picked
			}

			s, err := app.lookup(id)
			if err != nil {
				return err
			}

			ctrl, err := app.newController(s, hood, security)
			if err != nil {
				return err
			}

			takeaways, err := fixtures.Takeaways()
			if err != nil {
				app.Printer.Error("%v", err)
				return NewExitError(1)
			}

			app.logger().Info("starting walkthrough", "session", ctrl.SessionID(), "scenario", s.ID)
			err = app.Interactive(ctrl, tui.Options{
				Renderer:  output.NewRenderer(app.Config.Display.Width),
				Takeaways: takeaways,
			})
			if err != nil {
				app.Printer.Error("%v", err)
				return NewExitError(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&hood, "hood", app.Config.Display.ShowPipeline, "start with the pipeline (under the hood) view open")
	cmd.Flags().BoolVar(&security, "security", app.Config.Display.ShowSecurity, "start with the security overlay on")

	return cmd
}
