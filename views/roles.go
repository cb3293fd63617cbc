package views

import (
	"context"

	"neurowatch/views/components"

	"github.com/a-h/templ"
)

type persona struct {
	role        string
	icon        string
	title       string
	description string
	action      string
	buttonClass string
}

var personas = []persona{
	{
		role:        "doctor",
		icon:        "⚕",
		title:       "Medical Professional",
		description: "Access comprehensive patient analysis, EEG comparisons, and AI-powered diagnostics",
		action:      "Enter Doctor Dashboard",
		buttonClass: "btn btn-primary btn-lg",
	},
	{
		role:        "patient",
		icon:        "♥",
		title:       "Patient & Family",
		description: "Upload EEG data, view simplified reports, and track health insights",
		action:      "Enter Patient Portal",
		buttonClass: "btn btn-outline-accent btn-lg",
	},
}

// RoleSelection is the landing view of every fresh page load.
func RoleSelection() templ.Component {
	return components.Func(func(ctx context.Context, b *components.Builder) {
		b.Raw(`<div class="role-selection"><div class="hero">`)
		b.Raw(`<h1 class="gradient-title">NeuroWatch EEG Platform</h1>`)
		b.Raw(`<p class="lead muted">Advanced EEG monitoring and early schizophrenia detection using AI</p></div>`)
		b.Raw(`<div class="persona-grid">`)
		for _, p := range personas {
			b.Render(ctx, personaCard(p))
		}
		b.Raw(`</div><p class="tagline muted small">Secure • HIPAA Compliant • AI-Powered Analysis</p></div>`)
	})
}

func personaCard(p persona) templ.Component {
	return components.Card(components.CardProps{Variant: components.CardElevated, Class: "persona"},
		components.Func(func(_ context.Context, b *components.Builder) {
			b.Raw(`<div class="persona-icon" aria-hidden="true">`).Text(p.icon).Raw("</div>")
			b.Raw(`<h2 class="card-title">`).Text(p.title).Raw("</h2>")
			b.Raw(`<p class="card-description">`).Text(p.description).Raw("</p>")
			b.Raw("<button").
				Attr("class", p.buttonClass).
				Attr("hx-post", "/role").
				Attr("hx-vals", `{"role": "`+p.role+`"}`).
				Attr("hx-target", "#content").
				Raw(">").Text(p.action).Raw("</button>")
		}))
}
