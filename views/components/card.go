package components

import (
	"context"

	"github.com/a-h/templ"
)

// CardVariant picks the accent of a medical card.
type CardVariant string

const (
	CardDefault  CardVariant = "default"
	CardElevated CardVariant = "elevated"
	CardAlert    CardVariant = "alert"
	CardSuccess  CardVariant = "success"
	CardWarning  CardVariant = "warning"
)

// CardProps describes the optional header of a card.
type CardProps struct {
	Variant     CardVariant
	Title       string
	Icon        string
	Description string
	Class       string
	ID          string
}

// Card wraps body in the dashboard card chrome.
func Card(props CardProps, body templ.Component) templ.Component {
	return Func(func(ctx context.Context, b *Builder) {
		variant := props.Variant
		if variant == "" {
			variant = CardDefault
		}
		b.Raw("<section")
		if props.ID != "" {
			b.Attr("id", props.ID)
		}
		b.Attr("class", "card card-"+string(variant)+" "+props.Class).Raw(">")
		if props.Title != "" {
			b.Raw(`<header class="card-header"><h3 class="card-title">`)
			if props.Icon != "" {
				b.Raw(`<span class="icon" aria-hidden="true">`).Text(props.Icon).Raw("</span>")
			}
			b.Text(props.Title).Raw("</h3>")
			if props.Description != "" {
				b.Raw(`<p class="card-description">`).Text(props.Description).Raw("</p>")
			}
			b.Raw("</header>")
		}
		b.Raw(`<div class="card-content">`).Render(ctx, body).Raw("</div></section>")
	})
}

// Stat is the small figure card used in overview rows.
func Stat(variant CardVariant, label, value, icon, tone string) templ.Component {
	return Card(CardProps{Variant: variant, Class: "stat"}, Func(func(_ context.Context, b *Builder) {
		b.Raw(`<div class="stat-body"><div><p class="muted small">`).Text(label).Raw("</p>")
		b.Raw("<p").Attr("class", "stat-value text-"+tone).Raw(">").Text(value).Raw("</p></div>")
		b.Raw("<span").Attr("class", "stat-icon text-"+tone).Raw(` aria-hidden="true">`).Text(icon).Raw("</span></div>")
	}))
}
