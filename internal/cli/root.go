// Package cli provides the Cobra command tree for walkthrough.
//
// Commands receive their dependencies through an [App], so they can be
// executed in tests with an in-memory scenario library and a captured
// [output.Printer]. Failures are reported to the user by the command and
// signalled with an [ExitError].
//
// Key types:
//   - [App] - dependencies shared by all commands
//   - [ExecuteResult] - exit code and error of one invocation
//   - [ExitError] - non-zero exit without os.Exit
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"walkthrough/internal/config"
	"walkthrough/internal/fixtures"
	"walkthrough/internal/logging"
	"walkthrough/internal/output"
	"walkthrough/internal/scenario"
	"walkthrough/internal/tui"
)

// App holds the dependencies of the command tree.
type App struct {
	Config  *config.Config
	Library *fixtures.Library
	Printer *output.Printer
	Logger  *slog.Logger

	// Interactive runs an interactive session. Defaults to [tui.Run].
	Interactive func(ctrl *scenario.Controller, opts tui.Options) error

	// Pick chooses a scenario when walk is given none. Defaults to [tui.PickScenario].
	Pick func(list []*scenario.Scenario, defaultID string) (string, error)
}

// NewApp wires an [App] from cfg, loading the configured scenario sources.
// Diagnostic logs go to logOut.
func NewApp(cfg *config.Config, logOut io.Writer) (*App, error) {
	logger := logging.New(cfg.Log, logOut)

	lib, err := loadLibrary(cfg.Scenarios, logger)
	if err != nil {
		return nil, err
	}

	printer := output.NewPrinter()
	printer.SetWidth(cfg.Display.Width)

	return &App{
		Config:      cfg,
		Library:     lib,
		Printer:     printer,
		Logger:      logger,
		Interactive: tui.Run,
		Pick:        tui.PickScenario,
	}, nil
}

func loadLibrary(cfg config.ScenariosConfig, logger *slog.Logger) (*fixtures.Library, error) {
	lib, err := fixtures.NewLibrary()
	if err != nil {
		return nil, err
	}

	if cfg.IncludeBuiltin {
		builtin, err := fixtures.Builtin()
		if err != nil {
			return nil, fmt.Errorf("failed to load built-in scenarios: %w", err)
		}
		if err := lib.Merge(builtin); err != nil {
			return nil, err
		}
	}

	if cfg.Dir != "" {
		extra, err := fixtures.LoadDir(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to load scenarios from %s: %w", cfg.Dir, err)
		}
		if err := lib.Merge(extra); err != nil {
			return nil, fmt.Errorf("failed to merge scenarios from %s: %w", cfg.Dir, err)
		}
		logger.Info("loaded scenario directory", "dir", cfg.Dir, "count", extra.Len())
	}

	return lib, nil
}

// NewRootCommand builds the command tree for app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "walkthrough",
		Short: "Step through what happens inside an AI assistant",
		Long: `walkthrough replays a chat prompt and reveals, one stage at a time,
the pipeline that produced the answer: prompt parsing, context assembly,
tool calls, vector lookup, generation and post-processing.

Each stage can be opened for details, and a security overlay shows the
threats that apply to stages already reached.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newListCommand(app),
		newShowCommand(app),
		newWalkCommand(app),
		newValidateCommand(app),
		newThreatsCommand(app),
	)

	return rootCmd
}

// ExecuteResult is the outcome of one CLI invocation.
type ExecuteResult struct {
	ExitCode int
	Err      error
}

// RunWithConfig runs the command tree with args against cfg.
func RunWithConfig(cfg *config.Config, args []string) ExecuteResult {
	app, err := NewApp(cfg, os.Stderr)
	if err != nil {
		return ExecuteResult{ExitCode: 1, Err: err}
	}
	return run(app, args)
}

func run(app *App, args []string) ExecuteResult {
	rootCmd := NewRootCommand(app)
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		if code, ok := IsExitError(err); ok {
			return ExecuteResult{ExitCode: code, Err: err}
		}
		return ExecuteResult{ExitCode: 1, Err: err}
	}
	return ExecuteResult{ExitCode: 0}
}

// Execute loads configuration, runs the CLI with os.Args and exits the process.
func Execute() {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	result := RunWithConfig(cfg, os.Args[1:])
	if result.Err != nil {
		var exitErr *ExitError
		if !errors.As(result.Err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", result.Err)
		}
	}
	os.Exit(result.ExitCode)
}

// lookup fetches a scenario, printing the available ids when it is missing.
func (app *App) lookup(id string) (*scenario.Scenario, error) {
	s, err := app.Library.Get(id)
	if err != nil {
		app.Printer.Error("%v", err)
		if errors.Is(err, fixtures.ErrScenarioNotFound) {
			fmt.Fprintf(app.Printer.Writer(), "Available scenarios: %v\n", app.Library.IDs())
		}
		return nil, NewExitError(1)
	}
	return s, nil
}

func (app *App) newController(s *scenario.Scenario, pipeline, security bool) (*scenario.Controller, error) {
	ctrl, err := scenario.NewController(s, scenario.Options{
		ShowPipeline: pipeline,
		ShowSecurity: security,
		Logger:       app.logger(),
	})
	if err != nil {
		app.Printer.Error("%v", err)
		return nil, NewExitError(1)
	}
	return ctrl, nil
}

func (app *App) logger() *slog.Logger {
	if app.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return app.Logger
}
