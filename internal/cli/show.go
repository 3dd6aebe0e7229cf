package cli

import (
	"github.com/spf13/cobra"

	"walkthrough/internal/scenario"
)

func newShowCommand(app *App) *cobra.Command {
	var (
		step     int
		hood     bool
		security bool
		detailAt int
		actions  string
	)

	cmd := &cobra.Command{
		Use:   "show <scenario-id>",
		Short: "Render one moment of a walkthrough",
		Long: `Render a single snapshot of a scenario without entering the interactive view.

Stages and detail indexes are 1-based. --actions applies a comma-separated
list of navigation actions after --step: next, previous, goto:N, detail:N,
dismiss, hood, security (indexes in actions are 0-based).

Example:
  walkthrough show email --step 3 --hood --security --detail 2
  walkthrough show research --actions next,next,detail:1,goto:0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.lookup(args[0])
			if err != nil {
				return err
			}

			ctrl, err := app.newController(s, hood, security)
			if err != nil {
				return err
			}
			ctrl.Subscribe(func(vm scenario.ViewModel) {
				app.logger().Debug("view updated",
					"session", vm.SessionID,
					"stage", vm.Current.ID,
					"detail", vm.Detail != nil,
				)
			})

			var steps []scenario.Action
			if step > 0 {
				steps = append(steps, scenario.Action{Kind: scenario.ActionGoTo, Index: step - 1})
			}
			parsed, err := scenario.ParseActions(actions)
			if err != nil {
				app.Printer.Error("%v", err)
				return NewExitError(1)
			}
			steps = append(steps, parsed...)
			if detailAt > 0 {
				steps = append(steps, scenario.Action{Kind: scenario.ActionDetail, Index: detailAt - 1})
			}

			for _, a := range steps {
				if err := ctrl.Dispatch(a); err != nil {
					app.Printer.Error("%s: %v", a, err)
					return NewExitError(1)
				}
			}

			app.Printer.View(ctrl.Snapshot())
			return nil
		},
	}

	cmd.Flags().IntVar(&step, "step", 0, "stage to show (1-based)")
	cmd.Flags().BoolVar(&hood, "hood", app.Config.Display.ShowPipeline, "show the pipeline (under the hood) view")
	cmd.Flags().BoolVar(&security, "security", app.Config.Display.ShowSecurity, "show the security overlay")
	cmd.Flags().IntVar(&detailAt, "detail", 0, "open details for this stage (1-based)")
	cmd.Flags().StringVar(&actions, "actions", "", "comma-separated navigation actions")

	return cmd
}
