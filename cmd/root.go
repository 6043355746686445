package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "toolsim",
		Short:         "Tool rental store simulator",
		Long:          "toolsim simulates a tool rental store over a number of days: customers rent tools for multi-day periods, return them when the rental ends, and the store accrues revenue.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app := newApp()
	app.bindPersistentFlags(rootCmd)

	rootCmd.AddCommand(
		newVersionCmd(),
		newSimulateCmd(app),
		newConfigCmd(app),
	)

	return rootCmd
}
