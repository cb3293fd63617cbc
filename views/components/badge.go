package components

import (
	"context"

	"neurowatch/internal/models"

	"github.com/a-h/templ"
)

func Badge(variant, label string) templ.Component {
	return Func(func(_ context.Context, b *Builder) {
		b.Raw("<span").Attr("class", "badge badge-"+variant).Raw(">").Text(label).Raw("</span>")
	})
}

// StatusVariant maps a patient status to its badge colour.
func StatusVariant(status models.PatientStatus) string {
	switch status {
	case models.StatusAlert:
		return "destructive"
	case models.StatusWarning:
		return "warning"
	case models.StatusNormal:
		return "success"
	default:
		return "secondary"
	}
}

func StatusIcon(status models.PatientStatus) string {
	switch status {
	case models.StatusAlert:
		return "⚠"
	case models.StatusWarning:
		return "↗"
	case models.StatusNormal:
		return "✓"
	default:
		return "∿"
	}
}

// StatusBadge renders the patient list badge with an icon and screen-reader label.
func StatusBadge(status models.PatientStatus) templ.Component {
	return Func(func(_ context.Context, b *Builder) {
		b.Raw("<span").Attr("class", "badge badge-"+StatusVariant(status)).Attr("title", string(status)).Raw(">")
		b.Text(StatusIcon(status)).Raw(`<span class="sr-only">`).Text(string(status)).Raw("</span></span>")
	})
}

func Progress(value int, class string) templ.Component {
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	return Func(func(_ context.Context, b *Builder) {
		b.Raw(`<div role="progressbar" aria-valuemin="0" aria-valuemax="100"`).
			Attr("aria-valuenow", itoa(value)).
			Attr("class", "progress "+class).
			Raw(`><div class="progress-bar"`).Attr("style", "width: "+itoa(value)+"%").Raw("></div></div>")
	})
}
