package goldmark

import (
	"fmt"

	"github.com/fwojciec/notionpub"
	"github.com/yuin/goldmark/util"
)

// Kind identifies a serialization event a [Rule] can take over.
type Kind int

const (
	HeadingOpen Kind = iota
	ParagraphOpen
	BulletListOpen
	OrderedListOpen
	ListItemOpen
	ListItemClose
	Image
	BlockquoteOpen
	CodeInline
)

var kindNames = [...]string{
	HeadingOpen:     "heading_open",
	ParagraphOpen:   "paragraph_open",
	BulletListOpen:  "bullet_list_open",
	OrderedListOpen: "ordered_list_open",
	ListItemOpen:    "list_item_open",
	ListItemClose:   "list_item_close",
	Image:           "image",
	BlockquoteOpen:  "blockquote_open",
	CodeInline:      "code_inline",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token carries the node data available to a rule. String fields are
// already HTML-escaped.
type Token struct {
	Kind    Kind
	Level   int    // HeadingOpen
	Start   int    // OrderedListOpen
	Src     string // Image
	Alt     string // Image: plain text of the image description
	Content string // CodeInline
}

// Context is the render state of a single Render call.
//
// List context is tracked as a depth so nested list items are accounted
// for: InsideList reports false only once every open item has closed.
type Context struct {
	listDepth int
}

// InsideList reports whether rendering is inside a list item.
func (c *Context) InsideList() bool { return c.listDepth > 0 }

func (c *Context) enterListItem() { c.listDepth++ }

func (c *Context) leaveListItem() {
	if c.listDepth > 0 {
		c.listDepth--
	}
}

// Rule returns the markup fragment for an event.
type Rule func(tok Token, ctx *Context) string

// Rules maps events to rules. Events without a rule use goldmark's default
// HTML serialization.
type Rules map[Kind]Rule

// With returns a copy of r with the rule for k replaced.
func (r Rules) With(k Kind, rule Rule) Rules {
	out := make(Rules, len(r)+1)
	for kind, fn := range r {
		out[kind] = fn
	}
	out[k] = rule
	return out
}

// DefaultRules returns rules that inline the given styles into every
// element, as required by platforms that strip stylesheets.
func DefaultRules(s notionpub.StyleSheet) Rules {
	return Rules{
		HeadingOpen: func(tok Token, _ *Context) string {
			style := s.H3
			switch tok.Level {
			case 1:
				style = s.H1
			case 2:
				style = s.H2
			}
			return fmt.Sprintf(`<h%d style="%s">`, tok.Level, attr(style))
		},
		ParagraphOpen: func(_ Token, ctx *Context) string {
			// Block spacing inside a list item pushes the text away from
			// its bullet.
			if ctx.InsideList() {
				return `<p style="` + attr(s.InlineParagraph) + `">`
			}
			return `<p style="` + attr(s.Paragraph) + `">`
		},
		BulletListOpen: func(Token, *Context) string {
			return `<ul style="` + attr(s.BulletList) + `">`
		},
		OrderedListOpen: func(Token, *Context) string {
			return `<ol style="` + attr(s.OrderedList) + `">`
		},
		ListItemOpen: func(Token, *Context) string {
			return `<li style="` + attr(s.ListItem) + `">`
		},
		ListItemClose: func(Token, *Context) string {
			return `</li>`
		},
		Image: func(tok Token, _ *Context) string {
			return `<section style="` + attr(s.ImageWrapper) + `">` +
				`<img src="` + tok.Src + `" alt="` + tok.Alt + `" style="` + attr(s.Image) + `" />` +
				`</section>`
		},
		BlockquoteOpen: func(Token, *Context) string {
			return `<blockquote style="` + attr(s.Blockquote) + `">`
		},
		CodeInline: func(tok Token, _ *Context) string {
			return `<code style="` + attr(s.Code) + `">` + tok.Content + `</code>`
		},
	}
}

func attr(s string) string {
	return string(util.EscapeHTML([]byte(s)))
}
