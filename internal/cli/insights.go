package cli

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"subtrack/internal/core"
	"subtrack/internal/report"
	"subtrack/internal/services"
)

func newCostsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "costs",
		Short: "Show monthly and annual cost totals with a category breakdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := app.Service.CostSummary(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			symbol := app.Config.CurrencySymbol

			fmt.Fprintf(out, "Subscriptions: %d\n", summary.Count)
			fmt.Fprintf(out, "Monthly total: %s\n", summary.Monthly.Format(symbol))
			fmt.Fprintf(out, "Annual total:  %s\n", summary.Annual.Format(symbol))
			if len(summary.ByCategory) == 0 {
				return nil
			}

			fmt.Fprintln(out)
			tbl := newCLITable(out)
			tbl.AppendHeader(table.Row{"Category", "Monthly", "Share"})
			for _, c := range summary.ByCategory {
				tbl.AppendRow(table.Row{c.Category, c.Total.Format(symbol), fmt.Sprintf("%.1f%%", c.Percent)})
			}
			tbl.Render()
			return nil
		},
	}
}

func newRenewalsCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "renewals",
		Short: "List subscriptions renewing within the next N days",
		RunE: func(cmd *cobra.Command, args []string) error {
			today := core.DateOf(time.Now())
			renewals, err := app.Service.UpcomingRenewals(cmd.Context(), today, days)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(renewals) == 0 {
				fmt.Fprintf(out, "No renewals in the next %d days.\n", days)
				return nil
			}

			fmt.Fprintf(out, "Renewals in the next %d days:\n", days)
			tbl := newCLITable(out)
			tbl.AppendHeader(table.Row{"ID", "Name", "Renewal date", "Due", "Cost"})
			for _, r := range renewals {
				tbl.AppendRow(table.Row{
					r.ID, r.Name, r.RenewalDate,
					dueLabelDays(r.DaysUntil),
					r.Cost.Format(app.Config.CurrencySymbol),
				})
			}
			tbl.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", app.Config.RenewalWindowDays, "renewal window in days")
	return cmd
}

func newOverdueCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "List subscriptions whose renewal date has passed",
		RunE: func(cmd *cobra.Command, args []string) error {
			today := core.DateOf(time.Now())
			overdue, err := app.Service.Overdue(cmd.Context(), today)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(overdue) == 0 {
				fmt.Fprintln(out, "No overdue subscriptions.")
				return nil
			}

			fmt.Fprintf(out, "%d overdue subscription(s):\n", len(overdue))
			tbl := newCLITable(out)
			tbl.AppendHeader(table.Row{"ID", "Name", "Renewal date", "Overdue by", "Cost"})
			for _, o := range overdue {
				tbl.AppendRow(table.Row{
					o.ID, o.Name, o.RenewalDate,
					fmt.Sprintf("%d day(s)", o.DaysOverdue),
					o.Cost.Format(app.Config.CurrencySymbol),
				})
			}
			tbl.Render()
			return nil
		},
	}
}

func dueLabelDays(days int) string {
	switch days {
	case 0:
		return "today"
	case 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "report [summary|renewal|charts|xlsx|all]",
		Short:     "Generate report files under the reports directory",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"summary", "renewal", "charts", "xlsx", "all"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := "all"
			if len(args) == 1 {
				kind = args[0]
			}

			subs, err := app.Service.List(cmd.Context())
			if err != nil {
				return err
			}
			data, err := report.Build(subs, time.Now(), app.Config.RenewalWindowDays, app.Config.TrendMonths)
			if err != nil {
				return err
			}
			gen := report.NewGenerator(app.Config.ReportsDir, app.Config.CurrencySymbol)

			var paths []string
			switch kind {
			case "summary":
				p, err := gen.Summary(data)
				if err != nil {
					return err
				}
				paths = append(paths, p)
			case "renewal":
				p, err := gen.RenewalReport(data)
				if err != nil {
					return err
				}
				paths = append(paths, p)
			case "charts":
				for _, render := range []func(report.Data) (string, error){gen.PieChart, gen.BarChart, gen.TrendChart} {
					p, err := render(data)
					if err != nil {
						return err
					}
					paths = append(paths, p)
				}
			case "xlsx":
				p, err := gen.XLSX(data)
				if err != nil {
					return err
				}
				paths = append(paths, p)
			case "all":
				paths, err = gen.All(data)
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Generated %d file(s):\n", len(paths))
			for _, p := range paths {
				fmt.Fprintf(out, "  %s\n", p)
			}
			return nil
		},
	}
	return cmd
}

func newSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:    "seed",
		Short:  "Insert a set of demo subscriptions",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			demos := []services.Input{
				{Name: "Netflix", Category: "Streaming", Cost: "15.99", RenewalDate: "2024-02-15", PaymentMethod: "Credit Card"},
				{Name: "Spotify Premium", Category: "Music", Cost: "9.99", RenewalDate: "2024-01-20", PaymentMethod: "PayPal"},
				{Name: "Adobe Creative Cloud", Category: "Software", Cost: "52.99", RenewalDate: "2024-03-01", PaymentMethod: "Credit Card"},
				{Name: "Microsoft 365", Category: "Productivity", Cost: "6.99", RenewalDate: "2024-02-28", PaymentMethod: "Bank Transfer"},
				{Name: "Dropbox Plus", Category: "Cloud Storage", Cost: "9.99", RenewalDate: "2024-01-10", PaymentMethod: "Credit Card"},
				{Name: "The New York Times", Category: "News & Media", Cost: "17.00", RenewalDate: "2024-02-05", PaymentMethod: "Credit Card"},
			}
			for _, in := range demos {
				created, err := app.Service.Create(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %q (id %d)\n", created.Name, created.ID)
			}
			return nil
		},
	}
}
