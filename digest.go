package notionpub

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rivo/uniseg"
)

// Digest length bounds, in grapheme clusters.
const (
	DigestMinLength = 60
	DigestMaxLength = 120
)

// DefaultDigest is used when no digest could be produced.
const DefaultDigest = "Published via Notion-Publisher"

// Summarizer produces a short article digest from its markup.
type Summarizer interface {
	Summarize(ctx context.Context, content string) (string, error)
}

// DigestPrompt returns the instruction sent to a Summarizer backend.
func DigestPrompt(content string) string {
	return fmt.Sprintf(`Below is the content of an article. Read all of it, extract the core ideas and write a summary in the same language as the article.

Article:
%s

Output requirements (follow strictly):
1. Between %d and %d characters long; not shorter.
2. Engaging enough to make readers click, a little provocative but tasteful.
3. No filler and no opening like "This article is about...".
4. Output only the plain-text summary. No Markdown: no bold, no asterisks, no lists.`,
		content, DigestMinLength, DigestMaxLength)
}

var (
	digestBullets    = regexp.MustCompile(`(?m)^[ \t]*(?:[-*]|\d+\.)\s+`)
	digestMarkup     = regexp.MustCompile("\\*+|__|`")
	digestUnderscore = regexp.MustCompile(`(^|\s)_|_(\s|$)`)
)

// CleanDigest strips Markdown artifacts that models tend to emit despite
// instructions and truncates the result to DigestMaxLength graphemes.
func CleanDigest(s string) string {
	s = digestBullets.ReplaceAllString(s, "")
	s = digestMarkup.ReplaceAllString(s, "")
	s = digestUnderscore.ReplaceAllString(s, "$1$2")
	s = strings.TrimSpace(s)
	return truncateGraphemes(s, DigestMaxLength)
}

// truncateGraphemes shortens s to at most limit grapheme clusters, marking
// the cut with an ellipsis that counts towards the limit.
func truncateGraphemes(s string, limit int) string {
	if uniseg.GraphemeClusterCount(s) <= limit {
		return s
	}
	const ellipsis = "..."
	keep := limit - len(ellipsis)
	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for n := 0; n < keep && g.Next(); n++ {
		b.WriteString(g.Str())
	}
	b.WriteString(ellipsis)
	return b.String()
}
