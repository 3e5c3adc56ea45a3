package notionpub_test

import (
	"testing"

	"github.com/fwojciec/notionpub"
	"github.com/stretchr/testify/assert"
)

func TestDefaultTheme(t *testing.T) {
	t.Parallel()

	theme := notionpub.DefaultTheme()
	assert.Equal(t, 5, theme.Accent)
	assert.Equal(t, 8, theme.Muted)
	assert.Equal(t, 2, theme.Quote)
	assert.Equal(t, 1, theme.Error)
	assert.Equal(t, 2, theme.Success)
}
