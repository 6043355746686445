package cmd

import (
	"fmt"

	configfile "github.com/bnema/toolrental/internal/adapters/config/file"
	"github.com/bnema/toolrental/internal/domain"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the store configuration",
	}

	cmd.AddCommand(
		newConfigValidateCmd(app),
		newConfigShowCmd(app),
	)

	return cmd
}

func newConfigValidateCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the store configuration without running a simulation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.wire(cmd); err != nil {
				return err
			}

			cfg, err := app.service.LoadConfig(cmd.Context())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(),
				"Configuration OK: %s\n  tool types: %d (fleet %d)\n  customer categories: %d (customers %d)\n  days: %d\n",
				app.configPath, len(cfg.Tools), fleetSize(cfg), len(cfg.Customers), population(cfg), cfg.Simulation.Days,
			)
			return err
		},
	}
}

func newConfigShowCmd(app *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved store configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.wire(cmd); err != nil {
				return err
			}

			cfg, err := app.service.LoadConfig(cmd.Context())
			if err != nil {
				return err
			}

			data, err := configfile.Encode(cfg, configfile.Format(format))
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", string(configfile.FormatTOML), "Output format: toml or json")

	return cmd
}

func fleetSize(cfg domain.Config) int {
	total := 0
	for _, entry := range cfg.Tools {
		total += entry.Count
	}
	return total
}

func population(cfg domain.Config) int {
	total := 0
	for _, group := range cfg.Customers {
		total += group.Count
	}
	return total
}
