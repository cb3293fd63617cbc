package handlers

import (
	"encoding/json"
	"strconv"

	"neurowatch/internal/eeg"
	"neurowatch/internal/metrics"
	"neurowatch/views/components"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	normalColor   = "#2563eb"
	abnormalColor = "#dc2626"
	patientColor  = "#16a34a"
)

// generateEEGChart builds the line chart for one trace. Reference marks are
// drawn at eeg.ReferenceMarks when marks is set.
func generateEEGChart(samples []eeg.Sample, name, color string, marks bool) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "Time",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:  "value",
			Scale: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	)

	items := make([]opts.LineData, 0, len(samples))
	for _, s := range samples {
		items = append(items, opts.LineData{Value: []interface{}{s.Time, s.Amplitude}})
	}

	seriesOpts := []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), ShowSymbol: opts.Bool(false)}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: color, Width: 2}),
	}
	if marks {
		for _, x := range eeg.ReferenceMarks {
			seriesOpts = append(seriesOpts, charts.WithMarkLineNameXAxisItemOpts(opts.MarkLineNameXAxisItem{
				Name:  strconv.Itoa(x) + "s",
				XAxis: x,
			}))
		}
		seriesOpts = append(seriesOpts, charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
			Symbol:    []string{"none", "none"},
			LineStyle: &opts.LineStyle{Color: abnormalColor, Type: "dashed"},
		}))
	}
	line.AddSeries(name, items, seriesOpts...)
	return line
}

// chartFor turns a trace into the view model the templates render.
func chartFor(id, title, color string, samples []eeg.Sample, marks bool) components.Chart {
	line := generateEEGChart(samples, title, color, marks)
	optionsJSON, _ := json.Marshal(line.JSON())
	return components.Chart{
		ID:      id,
		Title:   title,
		Options: string(optionsJSON),
		Summary: metrics.Summarize(samples),
	}
}
