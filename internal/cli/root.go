package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"subtrack/internal/config"
	"subtrack/internal/core"
	"subtrack/internal/services"
)

// App bundles the dependencies the command tree needs. The store handle comes
// in through the service; nothing here is a process-wide singleton.
type App struct {
	Config  *config.Config
	Presets *config.Presets
	Service *services.SubscriptionService
}

// NewRootCmd builds the subtrack command tree.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "subtrack",
		Short:         "Track recurring subscriptions and their costs",
		Long:          "subtrack stores subscription records in a local SQLite database and reports on monthly/annual costs, upcoming renewals, and per-category spending.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newAddCmd(app),
		newListCmd(app),
		newGetCmd(app),
		newEditCmd(app),
		newRemoveCmd(app),
		newSearchCmd(app),
		newCostsCmd(app),
		newRenewalsCmd(app),
		newOverdueCmd(app),
		newReportCmd(app),
		newSeedCmd(app),
	)
	return root
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: id must be a positive integer, got %q", core.ErrInvalidInput, arg)
	}
	return id, nil
}

func newCLITable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

// dueColumn renders a human renewal status for listings.
func dueColumn(s core.Subscription, today core.Date) string {
	due, err := core.ParseDate(s.RenewalDate)
	if err != nil {
		return "?"
	}
	switch d := today.DaysUntil(due); {
	case d < 0:
		return fmt.Sprintf("overdue by %d days", -d)
	case d == 0:
		return "due today"
	case d == 1:
		return "in 1 day"
	default:
		return fmt.Sprintf("in %d days", d)
	}
}

func renderSubscriptions(w io.Writer, subs []core.Subscription, symbol string, now time.Time) {
	today := core.DateOf(now)
	t := newCLITable(w)
	t.AppendHeader(table.Row{"ID", "Name", "Category", "Monthly", "Renewal Date", "Due", "Payment Method"})
	for _, s := range subs {
		t.AppendRow(table.Row{s.ID, s.Name, s.Category, s.Cost.Format(symbol), s.RenewalDate, dueColumn(s, today), s.PaymentMethod})
	}
	t.Render()
}
