package notionpub

import (
	"context"
	"regexp"
)

// PageRef identifies a page in the content API.
type PageRef struct {
	ID    string
	Title string
}

// BlockSource retrieves complete block trees from the content API.
// Implementations handle pagination and expand children recursively, so
// the returned tree is complete and in visual order.
type BlockSource interface {
	PageTitle(ctx context.Context, pageID string) (string, error)
	Blocks(ctx context.Context, pageID string) ([]Block, error)
}

// Searcher finds pages by title.
type Searcher interface {
	Search(ctx context.Context, query string) ([]PageRef, error)
}

var pageIDPattern = regexp.MustCompile(`[a-f0-9]{32}`)

// ParsePageID extracts a 32-character page ID from a page URL. Input
// without one is returned unchanged.
func ParsePageID(input string) string {
	if id := pageIDPattern.FindString(input); id != "" {
		return id
	}
	return input
}
