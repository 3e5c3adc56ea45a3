// Package goldmark renders Markdown using goldmark for parsing. HTML output
// goes through a rule table that inlines article styles; terminal previews
// are styled with lipgloss.
package goldmark

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/fwojciec/notionpub"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// rulePriority places the rule layer ahead of goldmark's HTML renderer
// (priority 1000) so its funcs win registration.
const rulePriority = 100

// Renderer renders Markdown to styled HTML. It holds no per-document state,
// so a single Renderer may serve concurrent Render calls.
type Renderer struct {
	rules Rules
}

// New creates a [Renderer] that applies rules.
func New(rules Rules) *Renderer {
	return &Renderer{rules: rules}
}

// Render renders source with rules.
func Render(source string, rules Rules) (string, error) {
	return New(rules).Render(source)
}

// Render parses source and serializes it to HTML. Source that is not valid
// UTF-8 fails with [notionpub.ErrMalformedMarkup].
func (r *Renderer) Render(source string) (string, error) {
	if !utf8.ValidString(source) {
		return "", fmt.Errorf("invalid UTF-8: %w", notionpub.ErrMalformedMarkup)
	}
	md := goldmark.New(
		goldmark.WithExtensions(extension.Linkify, extension.Typographer),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
			renderer.WithNodeRenderers(util.Prioritized(newRuleRenderer(r.rules), rulePriority)),
		),
	)
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return buf.String(), nil
}

// Wrap wraps rendered HTML in the outer container element.
func Wrap(body, containerStyle string) string {
	return `<div style="` + attr(containerStyle) + `">` + body + `</div>`
}
