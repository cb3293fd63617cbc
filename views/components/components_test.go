package components

import (
	"context"
	"strings"
	"testing"

	"neurowatch/internal/metrics"
	"neurowatch/internal/models"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, c.Render(context.Background(), &sb))
	return sb.String()
}

func TestBuilderEscapes(t *testing.T) {
	html := render(t, Func(func(_ context.Context, b *Builder) {
		b.Raw("<p").Attr("title", `"x"`).Raw(">").Text("a<b").Raw("</p>")
	}))
	require.Equal(t, `<p title="&#34;x&#34;">a&lt;b</p>`, html)
}

func TestStatusVariants(t *testing.T) {
	require.Equal(t, "destructive", StatusVariant(models.StatusAlert))
	require.Equal(t, "warning", StatusVariant(models.StatusWarning))
	require.Equal(t, "success", StatusVariant(models.StatusNormal))
	require.Contains(t, render(t, StatusBadge(models.StatusWarning)), "badge-warning")
}

func TestProgressClamps(t *testing.T) {
	require.Contains(t, render(t, Progress(140, "")), `aria-valuenow="100"`)
	require.Contains(t, render(t, Progress(-5, "")), `aria-valuenow="0"`)
}

func TestCardDefaultsVariant(t *testing.T) {
	html := render(t, Card(CardProps{Title: "Upload History"}, Func(func(_ context.Context, b *Builder) {})))
	require.Contains(t, html, "card card-default")
	require.Contains(t, html, "Upload History")
}

func TestEEGChart(t *testing.T) {
	html := render(t, EEGChart(Chart{ID: "c1", Title: "Baseline", Options: `{"series":[]}`, Summary: metrics.WaveformSummary{Flagged: 4}}))
	require.Contains(t, html, `id="c1"`)
	require.Contains(t, html, `data-chart="{&#34;series&#34;:[]}"`)
	require.Contains(t, html, "height: 200px")
	require.Contains(t, html, "4 flagged samples")
}
