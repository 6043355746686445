package cmd

import (
	"context"
	"fmt"
	"math"

	configfile "github.com/bnema/toolrental/internal/adapters/config/file"
	"github.com/bnema/toolrental/internal/application"
	"github.com/spf13/cobra"
)

const (
	simulateDaysKey     = "simulate.days"
	simulateSeedKey     = "simulate.seed"
	simulateShuffleKey  = "simulate.shuffle"
	simulateStrictKey   = "simulate.strict"
	simulateReportKey   = "simulate.report"
	simulateProgressKey = "simulate.progress"
)

func newSimulateCmd(app *app) *cobra.Command {
	var (
		asJSON        bool
		showCustomers bool
	)

	cmd := &cobra.Command{
		Use:   "simulate [config-file]",
		Short: "Run the store simulation and print an end-of-run summary",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				app.settings.Set(configfile.ConfigPathKey, args[0])
			}
			if err := app.wire(cmd); err != nil {
				return err
			}

			command, err := runCommandFromSettings(app)
			if err != nil {
				return err
			}

			var report application.Report
			simulate := func(ctx context.Context, progress func(day, total int)) error {
				var runErr error
				command.Progress = progress
				report, runErr = app.service.Run(ctx, command)
				return runErr
			}

			if app.settings.GetBool(simulateProgressKey) {
				err = runSimulationProgress(cmd.Context(), cmd.ErrOrStderr(), simulate)
			} else {
				err = simulate(cmd.Context(), nil)
			}
			if err != nil {
				return err
			}

			if path := app.settings.GetString(simulateReportKey); path != "" {
				if err := writeReportFile(cmd, app, path, report); err != nil {
					return err
				}
			}

			return writeReportOutput(cmd, app, report, asJSON, showCustomers)
		},
	}

	flags := cmd.Flags()
	flags.Int("days", 0, "Number of days to simulate (default: simulation.num_days)")
	flags.Uint64("seed", 0, "Random seed (default: simulation.seed, else a fresh seed)")
	flags.Bool("shuffle", false, "Shuffle customer order every day")
	flags.Bool("strict", false, "Fail the run on inventory invariant violations")
	flags.String("report", "", "Write a TOML report to this path")
	flags.Bool("progress", false, "Show a spinner on stderr while simulating")
	flags.BoolVar(&asJSON, "json", false, "Render JSON output")
	flags.BoolVar(&showCustomers, "customers", false, "List in-flight rentals per customer")

	_ = app.settings.BindPFlag(simulateDaysKey, flags.Lookup("days"))
	_ = app.settings.BindPFlag(simulateSeedKey, flags.Lookup("seed"))
	_ = app.settings.BindPFlag(simulateShuffleKey, flags.Lookup("shuffle"))
	_ = app.settings.BindPFlag(simulateStrictKey, flags.Lookup("strict"))
	_ = app.settings.BindPFlag(simulateReportKey, flags.Lookup("report"))
	_ = app.settings.BindPFlag(simulateProgressKey, flags.Lookup("progress"))

	return cmd
}

// runCommandFromSettings only overrides values that were set explicitly by
// flag, environment or settings file.
func runCommandFromSettings(app *app) (application.RunCommand, error) {
	settings := app.settings
	command := application.RunCommand{}

	if settings.IsSet(simulateDaysKey) {
		days := settings.GetInt(simulateDaysKey)
		if days < 0 {
			return application.RunCommand{}, fmt.Errorf("--days must not be negative")
		}
		command.Days = days
	}
	if settings.IsSet(simulateSeedKey) {
		seed := settings.GetUint64(simulateSeedKey)
		if seed > math.MaxInt64 {
			return application.RunCommand{}, fmt.Errorf("--seed must not exceed %d", int64(math.MaxInt64))
		}
		command.Seed = &seed
	}
	if settings.IsSet(simulateShuffleKey) {
		shuffle := settings.GetBool(simulateShuffleKey)
		command.ShuffleCustomers = &shuffle
	}
	if settings.IsSet(simulateStrictKey) {
		strict := settings.GetBool(simulateStrictKey)
		command.StrictInvariants = &strict
	}

	return command, nil
}

func writeReportFile(cmd *cobra.Command, app *app, path string, report application.Report) error {
	writer, err := app.newReportWriter(path)
	if err != nil {
		return fmt.Errorf("wire report writer: %w", err)
	}
	if err := writer.Write(cmd.Context(), report); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", path)
	return nil
}
