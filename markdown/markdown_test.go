package markdown_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/notionpub"
	"github.com/fwojciec/notionpub/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func para(text ...string) notionpub.Block {
	return notionpub.Block{Kind: notionpub.KindParagraph, Text: text}
}

func block(kind notionpub.BlockKind, text string, children ...notionpub.Block) notionpub.Block {
	return notionpub.Block{Kind: kind, Text: []string{text}, Children: children}
}

func image(url string) notionpub.Block {
	return notionpub.Block{
		Kind:  notionpub.KindImage,
		Media: &notionpub.Media{Source: notionpub.MediaExternal, ExternalURL: url},
	}
}

func convert(t *testing.T, blocks ...notionpub.Block) string {
	t.Helper()
	out, err := markdown.Convert(blocks)
	require.NoError(t, err)
	return out
}

func TestConvert(t *testing.T) {
	t.Parallel()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", convert(t))
	})

	t.Run("paragraph joins text runs", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Hello, world\n\n", convert(t, para("Hello, ", "world")))
	})

	t.Run("paragraph without text runs is dropped", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", convert(t, para()))
		assert.Equal(t, "a\n\nb\n\n", convert(t, para("a"), para(), para("b")))
	})

	t.Run("headings", func(t *testing.T) {
		t.Parallel()
		got := convert(t,
			block(notionpub.KindHeading1, "One"),
			block(notionpub.KindHeading2, "Two"),
			block(notionpub.KindHeading3, "Three"),
		)
		assert.Equal(t, "# One\n\n## Two\n\n### Three\n\n", got)
	})

	t.Run("bulleted items are not separated by blank lines", func(t *testing.T) {
		t.Parallel()
		got := convert(t,
			block(notionpub.KindBulletedListItem, "a"),
			block(notionpub.KindBulletedListItem, "b"),
		)
		assert.Equal(t, "- a\n- b\n", got)
	})

	t.Run("numbered items use a literal ordinal", func(t *testing.T) {
		t.Parallel()
		got := convert(t,
			block(notionpub.KindNumberedListItem, "first"),
			block(notionpub.KindNumberedListItem, "second"),
			block(notionpub.KindNumberedListItem, "third"),
		)
		assert.Equal(t, "1. first\n1. second\n1. third\n", got)
	})

	t.Run("list item children appended unprefixed", func(t *testing.T) {
		t.Parallel()
		got := convert(t, block(notionpub.KindBulletedListItem, "A", para("Nested")))
		assert.Equal(t, "- A\nNested\n\n", got)
	})

	t.Run("external image", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "![image](http://x/y.png)\n\n", convert(t, image("http://x/y.png")))
	})

	t.Run("hosted image uses file url", func(t *testing.T) {
		t.Parallel()
		b := notionpub.Block{
			Kind:  notionpub.KindImage,
			Media: &notionpub.Media{Source: notionpub.MediaFile, FileURL: "https://files/a.png?sig=1"},
		}
		assert.Equal(t, "![image](https://files/a.png?sig=1)\n\n", convert(t, b))
	})

	t.Run("quote line breaks become br", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "> a<br/>b\n\n", convert(t, block(notionpub.KindQuote, "a\nb")))
	})

	t.Run("quote children are prefixed line by line", func(t *testing.T) {
		t.Parallel()
		q := block(notionpub.KindQuote, "Said",
			para("first"),
			para("second"),
		)
		assert.Equal(t, "> Said\n>\n> first\n>\n> second\n\n", convert(t, q))
	})

	t.Run("quote with nested list", func(t *testing.T) {
		t.Parallel()
		q := block(notionpub.KindQuote, "Q",
			block(notionpub.KindBulletedListItem, "x"),
			block(notionpub.KindBulletedListItem, "y"),
		)
		assert.Equal(t, "> Q\n>\n> - x\n> - y\n\n", convert(t, q))
	})

	t.Run("columns pass children through", func(t *testing.T) {
		t.Parallel()
		cols := notionpub.Block{
			Kind: notionpub.KindColumnList,
			Children: []notionpub.Block{
				{Kind: notionpub.KindColumn, Children: []notionpub.Block{para("left")}},
				{Kind: notionpub.KindColumn, Children: []notionpub.Block{para("right")}},
			},
		}
		assert.Equal(t, "left\n\nright\n\n", convert(t, cols))
	})

	t.Run("unknown kinds are dropped without breaking siblings", func(t *testing.T) {
		t.Parallel()
		got := convert(t,
			para("before"),
			notionpub.Block{Kind: notionpub.KindOther, Text: []string{"callout"}, Children: []notionpub.Block{para("inner")}},
			para("after"),
		)
		assert.Equal(t, "before\n\nafter\n\n", got)
	})
}

func TestConvert_Scenario(t *testing.T) {
	t.Parallel()

	got := convert(t,
		block(notionpub.KindHeading1, "Title"),
		para("Hello"),
		block(notionpub.KindBulletedListItem, "A", para("Nested")),
		image("http://x/y.png"),
	)
	assert.Equal(t, "# Title\n\nHello\n\n- A\nNested\n\n![image](http://x/y.png)\n\n", got)
}

func TestConvert_PreservesSiblingOrder(t *testing.T) {
	t.Parallel()

	var children []notionpub.Block
	var want strings.Builder
	want.WriteString("> parent\n>\n")
	for i := range 10 {
		text := strings.Repeat("x", i+1)
		children = append(children, block(notionpub.KindBulletedListItem, text))
		want.WriteString("> - " + text)
		if i < 9 {
			want.WriteString("\n")
		}
	}
	want.WriteString("\n\n")

	got := convert(t, block(notionpub.KindQuote, "parent", children...))
	assert.Equal(t, want.String(), got)
}

func TestConverter_MaxDepth(t *testing.T) {
	t.Parallel()

	deep := para("leaf")
	for range 3 {
		deep = notionpub.Block{Kind: notionpub.KindColumn, Children: []notionpub.Block{deep}}
	}

	t.Run("within limit", func(t *testing.T) {
		t.Parallel()
		out, err := markdown.NewConverter(markdown.WithMaxDepth(3)).Convert([]notionpub.Block{deep})
		require.NoError(t, err)
		assert.Equal(t, "leaf\n\n", out)
	})

	t.Run("beyond limit", func(t *testing.T) {
		t.Parallel()
		_, err := markdown.NewConverter(markdown.WithMaxDepth(2)).Convert([]notionpub.Block{deep})
		assert.ErrorIs(t, err, notionpub.ErrTreeTooDeep)
	})
}

func TestConvert_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	blocks := []notionpub.Block{block(notionpub.KindQuote, "a\nb", para("c"))}
	_ = convert(t, blocks...)
	assert.Equal(t, []string{"a\nb"}, blocks[0].Text)
	assert.Equal(t, []string{"c"}, blocks[0].Children[0].Text)
}
