package components

import (
	"context"

	"github.com/a-h/templ"
)

// Alert renders an inline message. kind is "success", "error" or "info".
func Alert(message, kind string) templ.Component {
	return Func(func(_ context.Context, b *Builder) {
		b.Raw(`<div role="alert"`).Attr("class", "alert alert-"+kind).Raw(">").Text(message).Raw("</div>")
	})
}
