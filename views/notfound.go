package views

import (
	"context"

	"neurowatch/views/components"

	"github.com/a-h/templ"
)

// NotFound is shown for every path the app does not define.
func NotFound(path string) templ.Component {
	return components.Func(func(_ context.Context, b *components.Builder) {
		b.Raw(`<div class="not-found"><h1>404</h1><p class="lead muted">Oops! Page not found</p>`)
		b.Raw(`<p class="muted small">No page lives at <code>`).Text(path).Raw("</code>.</p>")
		b.Raw(`<a class="link" href="/">Return to Home</a></div>`)
	})
}
