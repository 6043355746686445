package cmd

import (
	"fmt"

	summaryadapter "github.com/bnema/toolrental/internal/adapters/render/summary"
	"github.com/bnema/toolrental/internal/application"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeReportOutput(cmd *cobra.Command, app *app, report application.Report, asJSON, showCustomers bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	rendered, err := app.summaryRenderer(report, summaryadapter.RenderOptions{
		ShowCustomers: showCustomers,
	})
	if err != nil {
		return fmt.Errorf("render summary: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
