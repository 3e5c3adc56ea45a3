// Package markdown converts content block trees into Markdown and provides
// the text-level post-processing applied to the result before rendering.
//
// The Markdown dialect is deliberately small: headings, paragraphs, list
// items, images and blockquotes. Image references are always emitted as
// single `![alt](locator)` substrings so later steps can locate and replace
// them literally.
package markdown

import (
	"fmt"
	"strings"

	"github.com/fwojciec/notionpub"
)

// DefaultMaxDepth bounds how deeply nested a block tree may be.
const DefaultMaxDepth = 64

// Converter flattens block trees into Markdown. A Converter has no mutable
// state and is safe for concurrent use.
type Converter struct {
	maxDepth int
}

// Option configures a [Converter].
type Option func(*Converter)

// WithMaxDepth sets the maximum nesting depth. Trees nested deeper fail to
// convert with [notionpub.ErrTreeTooDeep].
func WithMaxDepth(n int) Option {
	return func(c *Converter) { c.maxDepth = n }
}

// NewConverter creates a [Converter] with the given options.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{maxDepth: DefaultMaxDepth}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Convert converts blocks using a Converter with default options.
func Convert(blocks []notionpub.Block) (string, error) {
	return NewConverter().Convert(blocks)
}

// Convert returns the Markdown for blocks in order. Blocks of kinds without
// a Markdown representation, and paragraphs without text, produce no output.
func (c *Converter) Convert(blocks []notionpub.Block) (string, error) {
	var b strings.Builder
	if err := c.convert(&b, blocks, 0); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (c *Converter) convert(b *strings.Builder, blocks []notionpub.Block, depth int) error {
	if depth > c.maxDepth {
		return fmt.Errorf("depth %d exceeds %d: %w", depth, c.maxDepth, notionpub.ErrTreeTooDeep)
	}
	for _, block := range blocks {
		var children string
		if len(block.Children) > 0 {
			var cb strings.Builder
			if err := c.convert(&cb, block.Children, depth+1); err != nil {
				return err
			}
			children = cb.String()
		}
		writeBlock(b, block, children)
	}
	return nil
}

func writeBlock(b *strings.Builder, block notionpub.Block, children string) {
	text := block.PlainText()
	switch block.Kind {
	case notionpub.KindParagraph:
		if len(block.Text) > 0 {
			b.WriteString(text + "\n\n")
		}
	case notionpub.KindHeading1:
		b.WriteString("# " + text + "\n\n")
	case notionpub.KindHeading2:
		b.WriteString("## " + text + "\n\n")
	case notionpub.KindHeading3:
		b.WriteString("### " + text + "\n\n")
	case notionpub.KindBulletedListItem:
		b.WriteString("- " + text + "\n" + children)
	case notionpub.KindNumberedListItem:
		// Display numbering is left to the renderer.
		b.WriteString("1. " + text + "\n" + children)
	case notionpub.KindImage:
		var url string
		if block.Media != nil {
			url = block.Media.URL()
		}
		b.WriteString(ImageLine(url) + "\n\n")
	case notionpub.KindQuote:
		writeQuote(b, text, children)
	case notionpub.KindColumnList, notionpub.KindColumn:
		b.WriteString(children)
	}
}

// writeQuote keeps a quote a single Markdown blockquote: line breaks in its
// own text become <br/>, and nested content is re-prefixed line by line.
func writeQuote(b *strings.Builder, text, children string) {
	text = strings.ReplaceAll(text, "\n", "<br/>")
	if children == "" {
		b.WriteString("> " + text + "\n\n")
		return
	}
	lines := strings.Split(strings.TrimSpace(children), "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + line
		}
	}
	b.WriteString("> " + text + "\n>\n" + strings.Join(lines, "\n") + "\n\n")
}

// ImageLine returns the Markdown image reference for a locator.
func ImageLine(url string) string {
	return "![image](" + url + ")"
}
