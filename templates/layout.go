// Package templates holds the HTML components served by the handlers.
package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// html accumulates markup for a component and writes it in one call.
type html struct {
	strings.Builder
}

// text writes escaped text.
func (h *html) text(s string) {
	h.WriteString(templ.EscapeString(s))
}

// raw writes trusted markup.
func (h *html) raw(s string) {
	h.WriteString(s)
}

// rawf writes trusted markup with escaped arguments.
func (h *html) rawf(format string, args ...any) {
	for i, a := range args {
		if s, ok := a.(string); ok {
			args[i] = templ.EscapeString(s)
		}
	}
	fmt.Fprintf(h, format, args...)
}

func component(build func(ctx context.Context, h *html) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var h html
		if err := build(ctx, &h); err != nil {
			return err
		}
		_, err := io.WriteString(w, h.String())
		return err
	})
}

// Page wraps content in the full HTML document with HTMX and the toast
// listener.
func Page(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var h html
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.rawf(`<title>%s · SiteLedger</title>`, title)
		h.raw(`<link rel="stylesheet" href="/static/app.css">`)
		h.raw(`<script src="https://unpkg.com/htmx.org@2.0.4" defer></script>`)
		h.raw(`<script src="/static/toast.js" defer></script>`)
		h.raw(`</head><body><main id="main-content">`)
		if _, err := io.WriteString(w, h.String()); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main><div id="toast-container"></div></body></html>`)
		return err
	})
}
