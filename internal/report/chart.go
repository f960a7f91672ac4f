package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/i474232898/weather-report/internal/weather"
)

// RenderChart writes an HTML page with the hourly 2 m temperature and cloud
// cover of every bucketed day, labelled in the report's local time.
func RenderChart(w io.Writer, in weather.ReportInput) error {
	var (
		xs     []string
		temps  []opts.LineData
		clouds []opts.LineData
	)
	for _, day := range in.Days {
		for _, s := range day.Slots {
			xs = append(xs, s.LocalForecastTime.Time().Format("01-02 15:04"))
			temps = append(temps, opts.LineData{Value: s.Temperature2m})
			clouds = append(clouds, opts.LineData{Value: s.CloudCoverPct})
		}
	}

	title := fmt.Sprintf("%.4f, %.4f", in.Metadata.Query.Lat, in.Metadata.Query.Lng)
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Forecast " + title,
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%s %s", in.Timezone.ID, weather.RenderOffset(in.Timezone.Offset())),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	line.SetXAxis(xs).
		AddSeries("t_2m", temps).
		AddSeries("clct", clouds)

	return line.Render(w)
}
