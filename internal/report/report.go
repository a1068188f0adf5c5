// Package report turns aggregation output into text, chart, and spreadsheet
// artifacts. It consumes plain data values only, so the engine stays decoupled
// from any particular rendering library.
package report

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"subtrack/internal/core"
	applog "subtrack/internal/log"
	"subtrack/internal/services"
)

// Data is the full aggregation snapshot a report run renders from. All fields
// are plain values computed once by Build.
type Data struct {
	GeneratedAt time.Time
	Today       core.Date
	WindowDays  int

	Count   int
	Monthly core.Money
	Annual  core.Money

	ByCategory []services.CategoryCost // sorted by cost descending
	Renewals   []core.Renewal          // soonest first
	Overdue    []core.Overdue          // most overdue first
	Listing    []core.Subscription     // sorted by name
	Trend      []core.MonthCost        // oldest month first
}

// Build computes a report snapshot from the record set.
func Build(subs []core.Subscription, now time.Time, windowDays, trendMonths int) (Data, error) {
	today := core.DateOf(now)

	renewals, err := core.UpcomingRenewals(subs, today, windowDays)
	if err != nil {
		return Data{}, err
	}
	overdue, err := core.OverdueSubscriptions(subs, today)
	if err != nil {
		return Data{}, err
	}

	listing := make([]core.Subscription, len(subs))
	copy(listing, subs)
	sort.Slice(listing, func(i, j int) bool {
		a, b := strings.ToLower(listing[i].Name), strings.ToLower(listing[j].Name)
		if a != b {
			return a < b
		}
		return listing[i].ID < listing[j].ID
	})

	sum := services.SummarizeCosts(subs)

	return Data{
		GeneratedAt: now,
		Today:       today,
		WindowDays:  windowDays,
		Count:       sum.Count,
		Monthly:     sum.Monthly,
		Annual:      sum.Annual,
		ByCategory:  sum.ByCategory,
		Renewals:    renewals,
		Overdue:     overdue,
		Listing:     listing,
		Trend:       core.MonthlyTrend(subs, now, trendMonths),
	}, nil
}

// Generator writes report artifacts into an output directory. Artifacts are
// write-once, keyed by the snapshot's generation timestamp.
type Generator struct {
	outDir string
	symbol string
	log    *applog.Logger
}

func NewGenerator(outDir, currencySymbol string) *Generator {
	return &Generator{
		outDir: outDir,
		symbol: currencySymbol,
		log:    applog.New(slog.LevelInfo, applog.ComponentReport),
	}
}

const (
	stampLayout     = "20060102_150405"
	generatedLayout = "January 2, 2006 at 3:04 PM"
)

// WriteSummary renders the plain-text summary report. Section order is fixed:
// totals, category breakdown by cost descending, upcoming renewals, full
// listing by name.
func (g *Generator) WriteSummary(w io.Writer, data Data) error {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "SUBSCRIPTION TRACKER - SUMMARY REPORT")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Generated on: %s\n\n", data.GeneratedAt.Format(generatedLayout))

	fmt.Fprintln(w, "OVERVIEW")
	fmt.Fprintln(w, strings.Repeat("-", 20))
	fmt.Fprintf(w, "Total Subscriptions: %d\n", data.Count)
	fmt.Fprintf(w, "Total Monthly Cost: %s\n", data.Monthly.Format(g.symbol))
	fmt.Fprintf(w, "Total Annual Cost: %s\n\n", data.Annual.Format(g.symbol))

	if len(data.ByCategory) > 0 {
		fmt.Fprintln(w, "COST BY CATEGORY")
		t := newTable(w)
		t.AppendHeader(table.Row{"Category", "Monthly", "Share"})
		for _, c := range data.ByCategory {
			t.AppendRow(table.Row{c.Category, c.Total.Format(g.symbol), fmt.Sprintf("%.1f%%", c.Percent)})
		}
		t.Render()
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "UPCOMING RENEWALS (Next %d Days)\n", data.WindowDays)
	if len(data.Renewals) == 0 {
		fmt.Fprintf(w, "No renewals scheduled in the next %d days.\n\n", data.WindowDays)
	} else {
		t := newTable(w)
		t.AppendHeader(table.Row{"Name", "Category", "Cost", "Renewal Date", "Due"})
		for _, r := range data.Renewals {
			t.AppendRow(table.Row{r.Name, r.Category, r.Cost.Format(g.symbol), r.RenewalDate, dueLabel(r.DaysUntil)})
		}
		t.Render()
		fmt.Fprintln(w)
	}

	if len(data.Listing) > 0 {
		fmt.Fprintln(w, "ALL SUBSCRIPTIONS")
		t := newTable(w)
		t.AppendHeader(table.Row{"ID", "Name", "Category", "Monthly", "Renewal Date", "Payment Method"})
		for _, s := range data.Listing {
			t.AppendRow(table.Row{s.ID, s.Name, s.Category, s.Cost.Format(g.symbol), s.RenewalDate, s.PaymentMethod})
		}
		t.Render()
	}

	return nil
}

// WriteRenewalReport renders the detailed renewal report: overdue groups first
// (most overdue leading), then upcoming groups by days until due.
func (g *Generator) WriteRenewalReport(w io.Writer, data Data) error {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "RENEWAL REPORT - NEXT %d DAYS\n", data.WindowDays)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Generated on: %s\n\n", data.GeneratedAt.Format(generatedLayout))

	if len(data.Renewals) == 0 && len(data.Overdue) == 0 {
		fmt.Fprintf(w, "No renewals scheduled in the next %d days.\n", data.WindowDays)
		return nil
	}

	var dueCount int
	var dueCents int64

	for _, group := range groupOverdue(data.Overdue) {
		fmt.Fprintf(w, "OVERDUE BY %d DAYS\n", group.days)
		fmt.Fprintln(w, strings.Repeat("-", 20))
		var total int64
		for _, s := range group.subs {
			fmt.Fprintf(w, "  - %s (%s) - %s\n", s.Name, s.Category, s.Cost.Format(g.symbol))
			total += s.Cost.Cents
		}
		fmt.Fprintf(w, "  Total: %s\n\n", core.Money{Cents: total}.Format(g.symbol))
		dueCount += len(group.subs)
		dueCents += total
	}

	for _, group := range groupRenewals(data.Renewals) {
		if group.days == 0 {
			fmt.Fprintln(w, "DUE TODAY")
		} else {
			fmt.Fprintf(w, "DUE IN %d DAYS\n", group.days)
		}
		fmt.Fprintln(w, strings.Repeat("-", 20))
		var total int64
		for _, s := range group.subs {
			fmt.Fprintf(w, "  - %s (%s) - %s\n", s.Name, s.Category, s.Cost.Format(g.symbol))
			total += s.Cost.Cents
		}
		fmt.Fprintf(w, "  Total: %s\n\n", core.Money{Cents: total}.Format(g.symbol))
		dueCount += len(group.subs)
		dueCents += total
	}

	fmt.Fprintln(w, "SUMMARY")
	fmt.Fprintln(w, strings.Repeat("-", 10))
	fmt.Fprintf(w, "Total subscriptions due: %d\n", dueCount)
	fmt.Fprintf(w, "Total cost due: %s\n", core.Money{Cents: dueCents}.Format(g.symbol))
	return nil
}

// Summary writes the summary report to a timestamped file and returns its path.
func (g *Generator) Summary(data Data) (string, error) {
	return g.writeTextFile(data, "summary_report", g.WriteSummary)
}

// RenewalReport writes the renewal report to a timestamped file.
func (g *Generator) RenewalReport(data Data) (string, error) {
	return g.writeTextFile(data, "renewal_report", g.WriteRenewalReport)
}

// All generates every artifact: both text reports, the three charts, and the
// XLSX export. It returns the paths written.
func (g *Generator) All(data Data) ([]string, error) {
	var paths []string
	steps := []func(Data) (string, error){
		g.Summary,
		g.RenewalReport,
		g.PieChart,
		g.BarChart,
		g.TrendChart,
		g.XLSX,
	}
	for _, step := range steps {
		path, err := step(data)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (g *Generator) writeTextFile(data Data, kind string, render func(io.Writer, Data) error) (string, error) {
	if err := g.ensureOutDir(); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}
	path := g.artifactPath(data, kind, "txt")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", kind, err)
	}
	defer f.Close()

	if err := render(f, data); err != nil {
		return "", err
	}

	g.log.Info("Report saved", "kind", kind, "path", path)
	return path, nil
}

func (g *Generator) artifactPath(data Data, kind, ext string) string {
	name := fmt.Sprintf("%s_%s.%s", kind, data.GeneratedAt.Format(stampLayout), ext)
	return filepath.Join(g.outDir, name)
}

func (g *Generator) ensureOutDir() error {
	return os.MkdirAll(g.outDir, 0755)
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func dueLabel(days int) string {
	switch days {
	case 0:
		return "due today"
	case 1:
		return "in 1 day"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

type renewalGroup struct {
	days int
	subs []core.Subscription
}

// groupRenewals buckets an already-sorted renewal list by days until due.
func groupRenewals(renewals []core.Renewal) []renewalGroup {
	var groups []renewalGroup
	for _, r := range renewals {
		if n := len(groups); n > 0 && groups[n-1].days == r.DaysUntil {
			groups[n-1].subs = append(groups[n-1].subs, r.Subscription)
			continue
		}
		groups = append(groups, renewalGroup{days: r.DaysUntil, subs: []core.Subscription{r.Subscription}})
	}
	return groups
}

// groupOverdue buckets an already-sorted overdue list by days overdue.
func groupOverdue(overdue []core.Overdue) []renewalGroup {
	var groups []renewalGroup
	for _, o := range overdue {
		if n := len(groups); n > 0 && groups[n-1].days == o.DaysOverdue {
			groups[n-1].subs = append(groups[n-1].subs, o.Subscription)
			continue
		}
		groups = append(groups, renewalGroup{days: o.DaysOverdue, subs: []core.Subscription{o.Subscription}})
	}
	return groups
}
