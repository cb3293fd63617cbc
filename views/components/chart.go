package components

import (
	"context"
	"strconv"

	"neurowatch/internal/metrics"

	"github.com/a-h/templ"
)

// Chart is a rendered-on-the-client echarts block. Options holds the chart
// options as JSON.
type Chart struct {
	ID      string
	Title   string
	Options string
	Height  int
	Summary metrics.WaveformSummary
}

// EEGChart renders the chart container; the layout script initializes every
// element carrying data-chart.
func EEGChart(c Chart) templ.Component {
	return Func(func(_ context.Context, b *Builder) {
		height := c.Height
		if height <= 0 {
			height = 200
		}
		b.Raw(`<div class="eeg-chart"><h4 class="muted small">`).Text(c.Title).Raw("</h4>")
		b.Raw(`<div class="chart-frame"><div class="chart"`).
			Attr("id", c.ID).
			Attr("style", "height: "+itoa(height)+"px").
			Attr("data-chart", c.Options).
			Raw("></div></div>")
		b.Raw(`<p class="chart-summary muted small">`).
			Textf("Peak %.2f · RMS %.2f · σ %.2f", c.Summary.Peak, c.Summary.RMS, c.Summary.StdDev)
		if c.Summary.Flagged > 0 {
			b.Textf(" · %d flagged samples", c.Summary.Flagged)
		}
		b.Raw("</p></div>")
	})
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
