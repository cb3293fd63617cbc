package views

import (
	"context"
	"fmt"

	"neurowatch/internal/models"
	"neurowatch/views/components"

	"github.com/a-h/templ"
)

// processingProgress is the fixed bar shown while an upload is being analyzed.
const processingProgress = 60

// PatientDashboardData is everything the patient portal needs for one render.
type PatientDashboardData struct {
	Files   []models.UploadedFile
	Latest  *models.UploadedFile
	Chart   components.Chart
	Accept  string
	Polling bool
	Notice  string
}

func PatientDashboard(d PatientDashboardData) templ.Component {
	return components.Func(func(ctx context.Context, b *components.Builder) {
		b.Raw(`<div id="patient-dashboard" class="dashboard patient">`)
		b.Render(ctx, dashboardHeader("Patient Portal", "Upload EEG data and view your health insights", func(b *components.Builder) {
			b.Render(ctx, components.Badge("outline", "∿ Secure Upload"))
		}))
		b.Render(ctx, PatientWorkspace(d))
		b.Raw("</div>")
	})
}

// PatientWorkspace is the swappable body of the portal. While any upload is
// processing it polls itself once a second; the first render without pending
// uploads stops the polling.
func PatientWorkspace(d PatientDashboardData) templ.Component {
	return components.Func(func(ctx context.Context, b *components.Builder) {
		b.Raw(`<div id="patient-grid" class="container grid grid-3"`)
		if d.Polling {
			b.Attr("hx-get", "/patient/uploads").Attr("hx-trigger", "every 1s").Attr("hx-swap", "outerHTML")
		}
		b.Raw(">")

		b.Raw(`<div class="col-span-2 stack">`)
		if d.Notice != "" {
			b.Render(ctx, components.Alert(d.Notice, "error"))
		}
		b.Render(ctx, uploadCard(d.Accept))
		if d.Latest != nil {
			b.Render(ctx, latestAnalysis(*d.Latest, d.Chart))
		}
		b.Raw("</div>")

		b.Raw(`<div class="stack">`)
		b.Render(ctx, UploadHistory(d.Files))
		b.Render(ctx, healthTips())
		b.Render(ctx, supportCard())
		b.Raw("</div></div>")
	})
}

func uploadCard(accept string) templ.Component {
	return components.Card(components.CardProps{
		Title:       "Upload EEG Data",
		Icon:        "⤒",
		Description: "Upload your EEG files in CSV or EDF format for AI analysis",
	}, components.Func(func(_ context.Context, b *components.Builder) {
		b.Raw("<form").
			Attr("class", "dropzone").
			Attr("hx-post", "/patient/uploads").
			Attr("hx-encoding", "multipart/form-data").
			Attr("hx-trigger", "change, submit").
			Attr("hx-target", "#patient-grid").
			Attr("hx-swap", "outerHTML").
			Raw(">")
		b.Raw(`<div class="dropzone-icon" aria-hidden="true">⤒</div>`)
		b.Raw(`<h3>Drop your EEG files here</h3><p class="muted">Supports CSV and EDF formats up to 50MB</p>`)
		b.Raw(`<label class="btn btn-primary">Choose Files<input class="sr-only" type="file" name="files" multiple`).
			Attr("accept", accept).Raw("></label></form>")
	}))
}

func latestAnalysis(latest models.UploadedFile, chart components.Chart) templ.Component {
	return components.Card(components.CardProps{
		ID:          "latest-analysis",
		Title:       "Latest Analysis Results",
		Description: "Analysis from " + latest.Day(),
	}, components.Func(func(ctx context.Context, b *components.Builder) {
		b.Raw(`<div class="grid grid-2"><div><h4>Overall Assessment</h4>`)
		b.Raw(`<p class="text-success"><span aria-hidden="true">✓</span> <strong>Low Risk</strong></p>`)
		b.Raw(`<p class="muted small">Your EEG patterns show normal brain activity with no significant markers for schizophrenia risk.</p></div>`)
		b.Raw(`<div><h4>Risk Score</h4><div class="risk-score text-success">`).Textf("%d%%", latest.Score()).Raw("</div>")
		b.Render(ctx, components.Progress(latest.Score(), "thin"))
		b.Raw("</div></div>")
		b.Render(ctx, components.EEGChart(chart))
		b.Raw(`<div class="actions"><a class="btn btn-outline btn-sm" href="/reports/latest.xlsx" download>⤓ Download Report</a>`)
		b.Raw(`<button type="button" class="btn btn-outline btn-sm">View Details</button></div>`)
	}))
}

// UploadHistory lists every upload in the order it was picked.
func UploadHistory(files []models.UploadedFile) templ.Component {
	return components.Card(components.CardProps{Title: "Upload History", ID: "upload-history"}, components.Func(func(ctx context.Context, b *components.Builder) {
		b.Raw(`<ul class="upload-list">`)
		for _, f := range files {
			b.Raw("<li").Attr("class", "upload-item upload-"+string(f.Status)).Attr("data-upload-id", f.ID).Raw(">")
			b.Raw(`<div class="upload-item-head"><span class="upload-name">`).Text(f.Name).Raw("</span>")
			b.Raw("<span").Attr("class", "upload-status").Attr("title", string(f.Status)).Raw(">").Text(uploadIcon(f.Status)).Raw("</span></div>")
			b.Raw(`<div class="muted small">`).Text(f.Day()).Raw("</div>")
			if f.Status == models.UploadProcessing {
				b.Render(ctx, components.Progress(processingProgress, "thin"))
			}
			if f.HasRiskScore() {
				b.Raw(`<div class="small">Risk Score: <strong>`).Text(fmt.Sprintf("%d%%", f.Score())).Raw("</strong></div>")
			}
			b.Raw("</li>")
		}
		b.Raw("</ul>")
	}))
}

func uploadIcon(status models.UploadStatus) string {
	switch status {
	case models.UploadCompleted:
		return "✓"
	case models.UploadProcessing:
		return "⟳"
	case models.UploadError:
		return "!"
	default:
		return ""
	}
}

var brainHealthTips = []struct{ title, body string }{
	{"Maintain Regular Sleep", "7-9 hours of quality sleep supports healthy brain waves"},
	{"Stay Physically Active", "Regular exercise improves overall brain function"},
	{"Manage Stress", "Practice meditation or relaxation techniques"},
}

func healthTips() templ.Component {
	return components.Card(components.CardProps{Variant: components.CardSuccess, Title: "Brain Health Tips", Icon: "🧠"},
		components.Func(func(_ context.Context, b *components.Builder) {
			for _, tip := range brainHealthTips {
				b.Raw(`<div class="tip"><h4>`).Text(tip.title).Raw(`</h4><p class="muted small">`).Text(tip.body).Raw("</p></div>")
			}
		}))
}

func supportCard() templ.Component {
	return components.Card(components.CardProps{Title: "Need Help?"}, components.Func(func(_ context.Context, b *components.Builder) {
		b.Raw(`<p class="muted small">Contact our medical team if you have questions about your results.</p>`)
		b.Raw(`<button type="button" class="btn btn-outline btn-block">Contact Support</button>`)
	}))
}
