// Package mock provides test doubles for notionpub interfaces using function
// fields.
package mock

import (
	"context"

	"github.com/fwojciec/notionpub"
)

// Interface compliance checks.
var (
	_ notionpub.BlockSource = (*BlockSource)(nil)
	_ notionpub.Searcher    = (*Searcher)(nil)
)

// BlockSource is a test double for notionpub.BlockSource.
// Set the function fields for the methods you need.
type BlockSource struct {
	PageTitleFn func(ctx context.Context, pageID string) (string, error)
	BlocksFn    func(ctx context.Context, pageID string) ([]notionpub.Block, error)
}

// PageTitle delegates to PageTitleFn.
func (s *BlockSource) PageTitle(ctx context.Context, pageID string) (string, error) {
	return s.PageTitleFn(ctx, pageID)
}

// Blocks delegates to BlocksFn.
func (s *BlockSource) Blocks(ctx context.Context, pageID string) ([]notionpub.Block, error) {
	return s.BlocksFn(ctx, pageID)
}

// Searcher is a test double for notionpub.Searcher.
// Set SearchFn before calling Search.
type Searcher struct {
	SearchFn func(ctx context.Context, query string) ([]notionpub.PageRef, error)
}

// Search delegates to SearchFn.
func (s *Searcher) Search(ctx context.Context, query string) ([]notionpub.PageRef, error) {
	return s.SearchFn(ctx, query)
}
