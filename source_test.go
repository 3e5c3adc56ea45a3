package notionpub_test

import (
	"testing"

	"github.com/fwojciec/notionpub"
	"github.com/stretchr/testify/assert"
)

func TestParsePageID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare id", "0123456789abcdef0123456789abcdef", "0123456789abcdef0123456789abcdef"},
		{"page url", "https://www.notion.so/My-Page-0123456789abcdef0123456789abcdef", "0123456789abcdef0123456789abcdef"},
		{"url with query", "https://notion.so/0123456789abcdef0123456789abcdef?pvs=4", "0123456789abcdef0123456789abcdef"},
		{"dashed id unchanged", "01234567-89ab-cdef-0123-456789abcdef", "01234567-89ab-cdef-0123-456789abcdef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, notionpub.ParsePageID(tt.input))
		})
	}
}

func TestArticle_Validate(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, notionpub.Article{Content: "<p>x</p>"}.Validate(), notionpub.ErrValidation)
	assert.ErrorIs(t, notionpub.Article{Title: "T"}.Validate(), notionpub.ErrValidation)
	assert.NoError(t, notionpub.Article{Title: "T", Content: "<p>x</p>"}.Validate())
}

func TestStyleSheet_Merge(t *testing.T) {
	t.Parallel()

	base := notionpub.DefaultStyleSheet()
	merged := base.Merge(notionpub.StyleSheet{H1: "color: red;"})
	assert.Equal(t, "color: red;", merged.H1)
	assert.Equal(t, base.H2, merged.H2)
	assert.Equal(t, base.Container, merged.Container)
}
