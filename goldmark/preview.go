package goldmark

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/notionpub"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Preview renders Markdown as ANSI-styled terminal text, approximating how
// the published article is laid out. Paragraphs and list items wrap to
// width; quotes get a vertical bar.
func Preview(source string, width int, theme notionpub.Theme) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	p := newPreviewer(theme)
	return p.render([]byte(source), width)
}

type previewer struct {
	bold      lipgloss.Style
	italic    lipgloss.Style
	accent    lipgloss.Style
	muted     lipgloss.Style
	quote     lipgloss.Style
	underline lipgloss.Style
}

func newPreviewer(theme notionpub.Theme) *previewer {
	return &previewer{
		bold:      lipgloss.NewStyle().Bold(true),
		italic:    lipgloss.NewStyle().Italic(true),
		accent:    lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Bold(true),
		muted:     lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
		quote:     lipgloss.NewStyle().Foreground(ansiColor(theme.Quote)),
		underline: lipgloss.NewStyle().Underline(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

func (p *previewer) render(source []byte, width int) string {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))
	var buf bytes.Buffer
	p.walkBlocks(doc, source, width, &buf)
	return strings.TrimRight(buf.String(), "\n")
}

func (p *previewer) walkBlocks(node ast.Node, source []byte, width int, buf *bytes.Buffer) {
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		p.renderBlock(c, source, width, buf)
		if c.NextSibling() != nil {
			buf.WriteString("\n")
		}
	}
}

func (p *previewer) renderBlock(node ast.Node, source []byte, width int, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		buf.WriteString(p.wrap(p.inline(n, source), width))
		buf.WriteString("\n")

	case *ast.Heading:
		prefix := strings.Repeat("#", n.Level) + " "
		buf.WriteString(p.wrap(p.accent.Render(prefix+p.inline(n, source)), width))
		buf.WriteString("\n")

	case *ast.Blockquote:
		var inner bytes.Buffer
		p.walkBlocks(n, source, width-2, &inner)
		bar := p.quote.Render("│") + " "
		for _, line := range strings.Split(strings.TrimRight(inner.String(), "\n"), "\n") {
			buf.WriteString(bar + line + "\n")
		}

	case *ast.List:
		p.renderList(n, source, width, buf, 0)

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		gutter := p.muted.Render("│") + " "
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.WriteString(gutter + strings.TrimRight(string(line.Value(source)), "\n") + "\n")
		}

	case *ast.ThematicBreak:
		buf.WriteString(p.muted.Render(strings.Repeat("─", min(width, 40))) + "\n")

	case *ast.HTMLBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(source))
		}

	default:
		p.walkBlocks(node, source, width, buf)
	}
}

func (p *previewer) renderList(node *ast.List, source []byte, width int, buf *bytes.Buffer, depth int) {
	num := node.Start
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		marker := "• "
		if node.IsOrdered() {
			marker = fmt.Sprintf("%d. ", num)
			num++
		}
		indent := strings.Repeat("  ", depth)
		for ic := item.FirstChild(); ic != nil; ic = ic.NextSibling() {
			if nested, ok := ic.(*ast.List); ok {
				p.renderList(nested, source, width, buf, depth+1)
				continue
			}
			var inner bytes.Buffer
			p.renderBlock(ic, source, width-len(indent)-len(marker), &inner)
			p.writeItem(buf, indent, marker, strings.TrimRight(inner.String(), "\n"))
			marker = strings.Repeat(" ", len(marker))
		}
	}
}

// writeItem writes list item content with continuation lines aligned under
// the first line's text.
func (p *previewer) writeItem(buf *bytes.Buffer, indent, marker, content string) {
	continuation := indent + strings.Repeat(" ", lipgloss.Width(marker))
	for i, line := range strings.Split(content, "\n") {
		if i == 0 {
			buf.WriteString(indent + marker + line + "\n")
		} else {
			buf.WriteString(continuation + line + "\n")
		}
	}
}

func (p *previewer) wrap(s string, width int) string {
	if width < 10 {
		width = 10
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}

func (p *previewer) inline(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		p.renderInline(c, source, &buf)
	}
	return buf.String()
}

func (p *previewer) renderInline(node ast.Node, source []byte, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Text:
		buf.Write(n.Segment.Value(source))
		if n.SoftLineBreak() {
			buf.WriteByte(' ')
		}
		if n.HardLineBreak() {
			buf.WriteByte('\n')
		}

	case *ast.String:
		buf.Write(n.Value)

	case *ast.Emphasis:
		inner := p.inline(n, source)
		if n.Level == 1 {
			buf.WriteString(p.italic.Render(inner))
		} else {
			buf.WriteString(p.bold.Render(inner))
		}

	case *ast.CodeSpan:
		buf.WriteString(p.bold.Render(p.inline(n, source)))

	case *ast.Link:
		buf.WriteString(p.underline.Render(p.inline(n, source)))
		buf.WriteString(" " + p.muted.Render("("+string(n.Destination)+")"))

	case *ast.AutoLink:
		buf.WriteString(p.underline.Render(string(n.URL(source))))

	case *ast.Image:
		buf.WriteString(p.accent.Render("[" + p.inline(n, source) + "]"))
		buf.WriteString(" " + p.muted.Render(string(n.Destination)))

	case *ast.RawHTML:
		// Quotes use <br/> for line breaks inside a single block.
		raw := rawValue(n, source)
		if strings.EqualFold(strings.ReplaceAll(raw, " ", ""), "<br/>") {
			buf.WriteByte('\n')
			return
		}
		buf.WriteString(raw)

	default:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			p.renderInline(c, source, buf)
		}
	}
}

func rawValue(n *ast.RawHTML, source []byte) string {
	var b strings.Builder
	for i := 0; i < n.Segments.Len(); i++ {
		seg := n.Segments.At(i)
		b.Write(seg.Value(source))
	}
	return b.String()
}
