package main

import (
	"fmt"
	"io"
	"time"

	"github.com/jeneeldumasia/mp/internal/application/service"
	"github.com/jeneeldumasia/mp/internal/domain/entity"
	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print sales reports",
	}
	cmd.AddCommand(newReportDayCmd(), newReportWeekCmd())
	return cmd
}

func withApplication(fn func(app *application) error) error {
	cfg := loadConfig()
	log := newLogger(cfg, false)
	defer log.Close()

	app, err := newApplication(cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(app)
}

func newReportDayCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Print the sales of one day",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(func(app *application) error {
				summary, err := app.reports.DailySummary(cmd.Context(), date)
				if err != nil {
					return err
				}
				currency := app.settings.ShopSettings(cmd.Context()).CurrencySymbol
				printDailySummary(cmd.OutOrStdout(), summary, currency)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", time.Now().Format(entity.DateLayout), "day to report (YYYY-MM-DD)")
	return cmd
}

func newReportWeekCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Print the Monday to Sunday total of a week",
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := service.ParseDate("date", date)
			if err != nil {
				return err
			}
			return withApplication(func(app *application) error {
				summary, err := app.reports.WeeklySummary(cmd.Context(), ref)
				if err != nil {
					return err
				}
				currency := app.settings.ShopSettings(cmd.Context()).CurrencySymbol
				fmt.Fprintf(cmd.OutOrStdout(), "Week %s: %d sales, %s%s\n",
					summary.Label, summary.SaleCount, currency, summary.Total.StringFixed(2))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", time.Now().Format(entity.DateLayout), "any day of the week (YYYY-MM-DD)")
	return cmd
}

func printDailySummary(w io.Writer, s *service.DailySummary, currency string) {
	fmt.Fprintf(w, "Sales on %s: %d\n", s.Date, s.SaleCount)
	for _, sale := range s.Sales {
		clock := sale.Timestamp
		if t, err := sale.Time(); err == nil {
			clock = t.Format("3:04 PM")
		}
		fmt.Fprintf(w, "  %-8s %-4s %10s  %s\n", clock, sale.PaymentMethod, currency+sale.TotalAmount.StringFixed(2), sale.Summary())
	}
	fmt.Fprintf(w, "Cash:  %s%s\n", currency, s.CashTotal.StringFixed(2))
	fmt.Fprintf(w, "UPI:   %s%s\n", currency, s.UPITotal.StringFixed(2))
	fmt.Fprintf(w, "Total: %s%s\n", currency, s.Total.StringFixed(2))
}
