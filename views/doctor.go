package views

import (
	"context"
	"fmt"

	"neurowatch/internal/models"
	"neurowatch/views/components"

	"github.com/a-h/templ"
)

// DoctorDashboardData is everything the clinician view needs for one render.
type DoctorDashboardData struct {
	Patients []models.Patient
	Selected models.Patient
	Baseline components.Chart
	Current  components.Chart
}

func DoctorDashboard(d DoctorDashboardData) templ.Component {
	return components.Func(func(ctx context.Context, b *components.Builder) {
		b.Raw(`<div id="doctor-dashboard" class="dashboard doctor">`)
		b.Render(ctx, dashboardHeader("Doctor Dashboard", "EEG Analysis & Patient Management", func(b *components.Builder) {
			b.Render(ctx, components.Badge("outline", "🧠 AI Analysis Active"))
			b.Raw(`<a class="btn btn-outline btn-sm" href="/reports/patients.xlsx" download>⤓ Export Reports</a>`)
		}))
		b.Raw(`<div class="container grid grid-4">`)
		b.Raw(`<aside class="col-span-1">`).Render(ctx, patientList(d.Patients, d.Selected.ID)).Raw("</aside>")
		b.Raw(`<div id="patient-analysis" class="col-span-3 stack">`).Render(ctx, PatientAnalysis(d)).Raw("</div>")
		b.Raw("</div></div>")
	})
}

// dashboardHeader renders the title bar shared by both dashboards. Switch Role
// is a full navigation to "/", which starts over with a fresh workspace.
func dashboardHeader(title, subtitle string, actions func(b *components.Builder)) templ.Component {
	return components.Func(func(_ context.Context, b *components.Builder) {
		b.Raw(`<header class="dashboard-header"><div class="container header-row"><div>`)
		b.Raw(`<h1 class="text-primary">`).Text(title).Raw("</h1>")
		b.Raw(`<p class="muted">`).Text(subtitle).Raw(`</p></div><div class="header-actions">`)
		actions(b)
		b.Raw(`<a class="btn btn-ghost btn-sm" href="/">Switch Role</a>`)
		b.Raw("</div></div></header>")
	})
}

func patientList(patients []models.Patient, selectedID string) templ.Component {
	title := fmt.Sprintf("Patients (%d)", len(patients))
	return components.Card(components.CardProps{Title: title, Icon: "👥"}, components.Func(func(ctx context.Context, b *components.Builder) {
		b.Raw(`<ul class="patient-list">`)
		for _, p := range patients {
			class := "patient-item"
			if p.ID == selectedID {
				class += " selected"
			}
			b.Raw("<li").
				Attr("class", class).
				Attr("hx-get", "/doctor/patients/"+p.ID).
				Attr("hx-target", "#doctor-dashboard").
				Attr("hx-swap", "outerHTML").
				Attr("data-patient-id", p.ID).
				Raw(">")
			b.Raw(`<div class="patient-item-head"><span class="patient-name">`).Text(p.Name).Raw("</span>")
			b.Render(ctx, components.StatusBadge(p.Status)).Raw("</div>")
			b.Raw(`<div class="muted small"><div>`).Textf("Age: %d", p.Age).Raw("</div>")
			b.Raw("<div>").Textf("Risk: %d%%", p.RiskScore).Raw("</div>")
			b.Raw("<div>").Textf("Last scan: %s", p.LastScanDate.Format(models.DateLayout)).Raw("</div></div>")
			b.Raw("</li>")
		}
		b.Raw("</ul>")
	}))
}

// PatientAnalysis renders the overview cards, the trace comparison and the
// analysis narrative for the selected patient.
func PatientAnalysis(d DoctorDashboardData) templ.Component {
	return components.Func(func(ctx context.Context, b *components.Builder) {
		p := d.Selected
		riskVariant := components.CardDefault
		if p.Status == models.StatusAlert {
			riskVariant = components.CardAlert
		}

		b.Raw(`<div class="grid grid-3 overview">`)
		b.Render(ctx, components.Stat(riskVariant, "Risk Score", fmt.Sprintf("%d%%", p.RiskScore), "⚠", "destructive"))
		b.Render(ctx, components.Stat(components.CardDefault, "AI Confidence", fmt.Sprintf("%d%%", p.Confidence), "🧠", "primary"))
		b.Render(ctx, components.Stat(components.CardDefault, "Last Analysis", p.LastScanDate.Format(models.DateLayout), "∿", "accent"))
		b.Raw("</div>")

		b.Render(ctx, components.Card(components.CardProps{
			Title:       "EEG Wave Comparison",
			Description: "Normal baseline vs. " + p.Name + "'s current EEG patterns",
		}, components.Func(func(ctx context.Context, b *components.Builder) {
			b.Raw(`<div class="grid grid-2">`)
			b.Render(ctx, components.EEGChart(d.Baseline))
			b.Render(ctx, components.EEGChart(d.Current))
			b.Raw("</div>")
		})))

		b.Render(ctx, components.Card(components.CardProps{Title: "AI Analysis Results"}, analysisNarrative()))
	})
}

var (
	frequencyFindings = []struct{ band, finding string }{
		{"Alpha (8-12 Hz)", "Reduced activity"},
		{"Beta (13-30 Hz)", "Elevated"},
		{"Theta (4-7 Hz)", "Abnormally high"},
		{"Delta (0.5-4 Hz)", "Within normal range"},
	}
	recommendations = []string{
		"Schedule follow-up EEG in 2 weeks",
		"Consider psychiatric consultation",
		"Monitor for cognitive symptoms",
		"Review family history",
	}
)

func analysisNarrative() templ.Component {
	return components.Func(func(_ context.Context, b *components.Builder) {
		b.Raw(`<div class="finding finding-destructive"><span class="icon" aria-hidden="true">⚠</span><div>`)
		b.Raw(`<h4 class="text-destructive">Abnormal EEG Patterns Detected</h4>`)
		b.Raw(`<p class="muted small">Unusual theta wave activity in frontal regions (15-18s, 25-28s). `)
		b.Raw(`Patterns consistent with early schizophrenia markers.</p></div></div>`)

		b.Raw(`<div class="grid grid-2 small"><div><h5>Frequency Analysis</h5><ul class="muted">`)
		for _, f := range frequencyFindings {
			b.Raw("<li>").Text(f.band).Raw(": ")
			if f.finding == "Abnormally high" {
				b.Raw(`<span class="text-destructive">`).Text(f.finding).Raw("</span>")
			} else {
				b.Text(f.finding)
			}
			b.Raw("</li>")
		}
		b.Raw(`</ul></div><div><h5>Recommendations</h5><ul class="muted">`)
		for _, r := range recommendations {
			b.Raw("<li>").Text(r).Raw("</li>")
		}
		b.Raw("</ul></div></div>")
	})
}
