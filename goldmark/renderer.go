package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// funcTable collects the node renderer funcs a NodeRenderer registers.
type funcTable map[ast.NodeKind]renderer.NodeRendererFunc

func (t funcTable) Register(kind ast.NodeKind, fn renderer.NodeRendererFunc) {
	t[kind] = fn
}

// ruleRenderer dispatches node open/close events to Rules, falling back to
// goldmark's HTML serialization for events without a rule. A ruleRenderer
// owns the Context of exactly one render.
type ruleRenderer struct {
	rules    Rules
	ctx      *Context
	fallback funcTable
}

func newRuleRenderer(rules Rules) *ruleRenderer {
	fallback := funcTable{}
	html.NewRenderer(html.WithUnsafe()).RegisterFuncs(fallback)
	return &ruleRenderer{
		rules:    rules,
		ctx:      &Context{},
		fallback: fallback,
	}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *ruleRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.renderHeading)
	reg.Register(ast.KindParagraph, r.renderParagraph)
	reg.Register(ast.KindTextBlock, r.renderTextBlock)
	reg.Register(ast.KindList, r.renderList)
	reg.Register(ast.KindListItem, r.renderListItem)
	reg.Register(ast.KindImage, r.renderImage)
	reg.Register(ast.KindBlockquote, r.renderBlockquote)
	reg.Register(ast.KindCodeSpan, r.renderCodeSpan)
}

// apply writes the fragment for tok if a rule exists for its kind.
func (r *ruleRenderer) apply(w util.BufWriter, tok Token) bool {
	rule, ok := r.rules[tok.Kind]
	if !ok {
		return false
	}
	_, _ = w.WriteString(rule(tok, r.ctx))
	return true
}

func (r *ruleRenderer) renderHeading(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	if entering && r.apply(w, Token{Kind: HeadingOpen, Level: n.Level}) {
		return ast.WalkContinue, nil
	}
	return r.fallback[ast.KindHeading](w, source, node, entering)
}

func (r *ruleRenderer) renderParagraph(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering && r.apply(w, Token{Kind: ParagraphOpen}) {
		return ast.WalkContinue, nil
	}
	return r.fallback[ast.KindParagraph](w, source, node, entering)
}

// renderTextBlock treats the text of a tight list item as a paragraph so
// the paragraph rule also styles it.
func (r *ruleRenderer) renderTextBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	_, inItem := node.Parent().(*ast.ListItem)
	if _, ok := r.rules[ParagraphOpen]; !ok || !inItem {
		return r.fallback[ast.KindTextBlock](w, source, node, entering)
	}
	if entering {
		r.apply(w, Token{Kind: ParagraphOpen})
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString("</p>")
	if node.NextSibling() != nil && node.FirstChild() != nil {
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *ruleRenderer) renderList(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.List)
	tok := Token{Kind: BulletListOpen}
	if n.IsOrdered() {
		tok = Token{Kind: OrderedListOpen, Start: n.Start}
	}
	if entering && r.apply(w, tok) {
		_ = w.WriteByte('\n')
		return ast.WalkContinue, nil
	}
	return r.fallback[ast.KindList](w, source, node, entering)
}

// renderListItem moves the render context in and out of list context. The
// transition happens here rather than in the rules so that overriding a
// rule cannot leave the context unbalanced.
func (r *ruleRenderer) renderListItem(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		r.ctx.enterListItem()
		if !r.apply(w, Token{Kind: ListItemOpen}) {
			return r.fallback[ast.KindListItem](w, source, node, entering)
		}
		if fc := node.FirstChild(); fc != nil {
			if _, ok := fc.(*ast.TextBlock); !ok {
				_ = w.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	}
	defer r.ctx.leaveListItem()
	if r.apply(w, Token{Kind: ListItemClose}) {
		_ = w.WriteByte('\n')
		return ast.WalkContinue, nil
	}
	return r.fallback[ast.KindListItem](w, source, node, entering)
}

func (r *ruleRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if _, ok := r.rules[Image]; !ok {
		return r.fallback[ast.KindImage](w, source, node, entering)
	}
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)
	r.apply(w, Token{
		Kind: Image,
		Src:  string(util.EscapeHTML(util.URLEscape(n.Destination, true))),
		Alt:  string(util.EscapeHTML(plainText(n, source))),
	})
	return ast.WalkSkipChildren, nil
}

func (r *ruleRenderer) renderBlockquote(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering && r.apply(w, Token{Kind: BlockquoteOpen}) {
		_ = w.WriteByte('\n')
		return ast.WalkContinue, nil
	}
	return r.fallback[ast.KindBlockquote](w, source, node, entering)
}

func (r *ruleRenderer) renderCodeSpan(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if _, ok := r.rules[CodeInline]; !ok {
		return r.fallback[ast.KindCodeSpan](w, source, node, entering)
	}
	if !entering {
		return ast.WalkContinue, nil
	}
	var code bytes.Buffer
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		value := inlineValue(c, source)
		// Line endings inside a code span render as spaces.
		if v, ok := bytes.CutSuffix(value, []byte("\n")); ok {
			code.Write(v)
			code.WriteByte(' ')
			continue
		}
		code.Write(value)
	}
	r.apply(w, Token{Kind: CodeInline, Content: string(util.EscapeHTML(code.Bytes()))})
	return ast.WalkSkipChildren, nil
}

// plainText returns the concatenated text of node's inline descendants.
func plainText(node ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		if v := inlineValue(c, source); v != nil {
			buf.Write(v)
			continue
		}
		buf.Write(plainText(c, source))
	}
	return buf.Bytes()
}

func inlineValue(node ast.Node, source []byte) []byte {
	switch n := node.(type) {
	case *ast.Text:
		return n.Segment.Value(source)
	case *ast.String:
		return n.Value
	}
	return nil
}
