package notionpub_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/notionpub"
	"github.com/rivo/uniseg"
	"github.com/stretchr/testify/assert"
)

func TestCleanDigest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text unchanged", "A short digest.", "A short digest."},
		{"bold removed", "**Big** news today", "Big news today"},
		{"underscore bold removed", "__Big__ news", "Big news"},
		{"backticks removed", "run `go test` now", "run go test now"},
		{"emphasis markers removed", "an *important* _idea_ here", "an important idea here"},
		{"trailing asterisk removed", "dangling*", "dangling"},
		{"bullet marker removed", "- first point", "first point"},
		{"numbered marker removed", "1. first point", "first point"},
		{"leading number kept", "2024 was a year", "2024 was a year"},
		{"whitespace trimmed", "  padded  \n", "padded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, notionpub.CleanDigest(tt.in))
		})
	}
}

func TestCleanDigest_Truncates(t *testing.T) {
	t.Parallel()

	t.Run("ascii longer than limit", func(t *testing.T) {
		t.Parallel()
		got := notionpub.CleanDigest(strings.Repeat("a", 200))
		assert.Equal(t, notionpub.DigestMaxLength, uniseg.GraphemeClusterCount(got))
		assert.True(t, strings.HasSuffix(got, "..."))
		assert.Equal(t, strings.Repeat("a", 117)+"...", got)
	})

	t.Run("multibyte counted by grapheme", func(t *testing.T) {
		t.Parallel()
		in := strings.Repeat("文", 120)
		assert.Equal(t, in, notionpub.CleanDigest(in))

		long := strings.Repeat("文", 121)
		got := notionpub.CleanDigest(long)
		assert.Equal(t, strings.Repeat("文", 117)+"...", got)
	})
}

func TestDigestPrompt(t *testing.T) {
	t.Parallel()
	prompt := notionpub.DigestPrompt("# Title\n\nBody text")
	assert.Contains(t, prompt, "# Title\n\nBody text")
	assert.Contains(t, prompt, "60")
	assert.Contains(t, prompt, "120")
}
