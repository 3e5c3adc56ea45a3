package markdown_test

import (
	"testing"

	"github.com/fwojciec/notionpub/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument(t *testing.T) {
	t.Parallel()

	t.Run("with front matter", func(t *testing.T) {
		t.Parallel()
		src := "---\ntitle: Weekly Notes\ndigest: A short digest\ncover: cover.png\n---\n# Heading\n\nBody\n"
		doc, err := markdown.ParseDocument([]byte(src))
		require.NoError(t, err)
		assert.Equal(t, "Weekly Notes", doc.Meta.Title)
		assert.Equal(t, "A short digest", doc.Meta.Digest)
		assert.Equal(t, "cover.png", doc.Meta.Cover)
		assert.Contains(t, doc.Body, "# Heading")
		assert.NotContains(t, doc.Body, "title:")
		assert.Equal(t, "Weekly Notes", doc.Title("Untitled Draft"))
	})

	t.Run("without front matter", func(t *testing.T) {
		t.Parallel()
		src := "# Heading\n\nBody\n"
		doc, err := markdown.ParseDocument([]byte(src))
		require.NoError(t, err)
		assert.Equal(t, src, doc.Body)
		assert.Equal(t, "Heading", doc.Title("Untitled Draft"))
	})

	t.Run("title fallback", func(t *testing.T) {
		t.Parallel()
		doc, err := markdown.ParseDocument([]byte("just text\n"))
		require.NoError(t, err)
		assert.Equal(t, "Untitled Draft", doc.Title("Untitled Draft"))
	})
}
