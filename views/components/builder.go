package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Builder writes HTML to w and remembers the first error, so component bodies
// can be written as a flat sequence of calls.
type Builder struct {
	w   io.Writer
	err error
}

func NewBuilder(w io.Writer) *Builder {
	return &Builder{w: w}
}

// Raw writes trusted markup as is.
func (b *Builder) Raw(parts ...string) *Builder {
	for _, p := range parts {
		if b.err != nil {
			return b
		}
		_, b.err = io.WriteString(b.w, p)
	}
	return b
}

// Text writes s HTML-escaped.
func (b *Builder) Text(s string) *Builder {
	return b.Raw(templ.EscapeString(s))
}

func (b *Builder) Textf(format string, args ...any) *Builder {
	return b.Text(fmt.Sprintf(format, args...))
}

// Attr writes ` name="value"` with value escaped.
func (b *Builder) Attr(name, value string) *Builder {
	return b.Raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// Render renders a nested component into the same writer.
func (b *Builder) Render(ctx context.Context, c templ.Component) *Builder {
	if b.err != nil || c == nil {
		return b
	}
	b.err = c.Render(ctx, b.w)
	return b
}

func (b *Builder) Err() error {
	return b.err
}

// Func adapts a builder-style body into a templ component.
func Func(body func(ctx context.Context, b *Builder)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := NewBuilder(w)
		body(ctx, b)
		return b.Err()
	})
}
