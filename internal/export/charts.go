package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/waylightapp/waylight/internal/planning"
)

// ChartConfig holds configuration for chart rendering.
type ChartConfig struct {
	Title    string
	Subtitle string
	Width    string
	Height   string
	Theme    string
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:  "900px",
		Height: "500px",
		Theme:  "light",
	}
}

// RenderParkPriorityChart writes an interactive bar chart of park
// priority scores to an HTML file.
func RenderParkPriorityChart(summaries []*planning.ParkRatingSummary, config ChartConfig, outputPath string) error {
	labels := make([]string, len(summaries))
	scores := make([]opts.BarData, len(summaries))
	for i, s := range summaries {
		labels[i] = s.ParkName
		scores[i] = opts.BarData{Value: s.PriorityScore}
	}
	return renderBar(labels, "Priority Score", scores, config, outputPath)
}

// RenderDayAllocationChart writes an interactive bar chart of recommended
// park days to an HTML file.
func RenderDayAllocationChart(summaries []*planning.ParkRatingSummary, config ChartConfig, outputPath string) error {
	labels := make([]string, len(summaries))
	days := make([]opts.BarData, len(summaries))
	for i, s := range summaries {
		labels[i] = s.ParkName
		days[i] = opts.BarData{Value: s.RecommendedDays}
	}
	return renderBar(labels, "Recommended Days", days, config, outputPath)
}

// renderBar renders one bar series to an HTML file.
func renderBar(labels []string, seriesName string, data []opts.BarData, config ChartConfig, outputPath string) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
	)

	bar.SetXAxis(labels).
		AddSeries(seriesName, data).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(true),
			}),
		)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create chart directory: %w", err)
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
