package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/wcharczuk/go-chart/v2"
)

// RenderPie draws the category-cost pie chart.
func (g *Generator) RenderPie(w io.Writer, data Data) error {
	if len(data.ByCategory) == 0 {
		return fmt.Errorf("no subscription data available for chart generation")
	}

	values := make([]chart.Value, len(data.ByCategory))
	for i, c := range data.ByCategory {
		values[i] = chart.Value{
			Value: c.Total.Dollars(),
			Label: fmt.Sprintf("%s (%.1f%%)", c.Category, c.Percent),
		}
	}

	pie := chart.PieChart{
		Title:  "Subscription Costs by Category",
		Width:  800,
		Height: 800,
		Values: values,
	}
	return pie.Render(chart.PNG, w)
}

// RenderBar draws the category comparison bar chart, largest category first.
func (g *Generator) RenderBar(w io.Writer, data Data) error {
	if len(data.ByCategory) == 0 {
		return fmt.Errorf("no subscription data available for chart generation")
	}

	bars := make([]chart.Value, len(data.ByCategory))
	for i, c := range data.ByCategory {
		bars[i] = chart.Value{
			Value: c.Total.Dollars(),
			Label: c.Category,
		}
	}

	bar := chart.BarChart{
		Title:    "Subscription Costs by Category",
		Width:    1024,
		Height:   512,
		BarWidth: 60,
		Bars:     bars,
	}
	return bar.Render(chart.PNG, w)
}

// RenderTrend draws the monthly cost trend line. At least two trend points are
// required for a line to exist.
func (g *Generator) RenderTrend(w io.Writer, data Data) error {
	if len(data.Trend) < 2 {
		return fmt.Errorf("need at least two months of data for a trend chart, have %d", len(data.Trend))
	}

	xs := make([]time.Time, len(data.Trend))
	ys := make([]float64, len(data.Trend))
	for i, p := range data.Trend {
		xs[i] = time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
		ys[i] = p.Total.Dollars()
	}

	line := chart.Chart{
		Title:  "Monthly Subscription Cost Trend",
		Width:  1024,
		Height: 512,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("Jan 2006"),
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Monthly Cost",
				XValues: xs,
				YValues: ys,
			},
		},
	}
	return line.Render(chart.PNG, w)
}

// PieChart writes the pie chart to a timestamped PNG file.
func (g *Generator) PieChart(data Data) (string, error) {
	return g.writeChartFile(data, "cost_analysis", g.RenderPie)
}

// BarChart writes the bar chart to a timestamped PNG file.
func (g *Generator) BarChart(data Data) (string, error) {
	return g.writeChartFile(data, "category_comparison", g.RenderBar)
}

// TrendChart writes the trend chart to a timestamped PNG file.
func (g *Generator) TrendChart(data Data) (string, error) {
	return g.writeChartFile(data, "monthly_trend", g.RenderTrend)
}

func (g *Generator) writeChartFile(data Data, kind string, render func(io.Writer, Data) error) (string, error) {
	if err := g.ensureOutDir(); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}
	path := g.artifactPath(data, kind, "png")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s chart: %w", kind, err)
	}
	defer f.Close()

	if err := render(f, data); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("render %s chart: %w", kind, err)
	}

	g.log.Info("Chart saved", "kind", kind, "path", path)
	return path, nil
}
