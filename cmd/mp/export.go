package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jeneeldumasia/mp/internal/domain/entity"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var date, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the sales of one day to a spreadsheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = "sales-" + date + ".xlsx"
			}
			return withApplication(func(app *application) error {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				if err := app.reports.ExportDailyXLSX(cmd.Context(), date, f); err != nil {
					f.Close()
					os.Remove(out)
					return err
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("close %s: %w", out, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %s\n", out)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", time.Now().Format(entity.DateLayout), "day to export (YYYY-MM-DD)")
	cmd.Flags().StringVar(&out, "out", "", "output file (default sales-<date>.xlsx)")
	return cmd
}
