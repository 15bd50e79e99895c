// Package templates renders the public marketing pages. Components are
// plain templ.ComponentFunc values, so the package stays go-generate free.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// PageMeta is the head block of a public page.
type PageMeta struct {
	Title       string
	Description string
	Keywords    []string
}

// Layout wraps body in the shared document shell.
func Layout(meta PageMeta, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<!DOCTYPE html><html lang=\"ru\"><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">"); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "<title>%s</title>", templ.EscapeString(meta.Title)); err != nil {
			return err
		}
		if meta.Description != "" {
			if _, err := fmt.Fprintf(w, "<meta name=\"description\" content=\"%s\">", templ.EscapeString(meta.Description)); err != nil {
				return err
			}
		}
		if len(meta.Keywords) > 0 {
			if _, err := fmt.Fprintf(w, "<meta name=\"keywords\" content=\"%s\">", templ.EscapeString(joinComma(meta.Keywords))); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "<link rel=\"stylesheet\" href=\"/static/css/site.css\"></head><body>"); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "<script src=\"/static/js/site.js\"></script></body></html>")
		return err
	})
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
