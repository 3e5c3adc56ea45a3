package mock

import (
	"context"

	"github.com/fwojciec/notionpub"
)

// Interface compliance checks.
var (
	_ notionpub.MediaStager   = (*MediaStager)(nil)
	_ notionpub.MediaUploader = (*MediaUploader)(nil)
	_ notionpub.DraftCreator  = (*DraftCreator)(nil)
	_ notionpub.Summarizer    = (*Summarizer)(nil)
)

// MediaStager is a test double for notionpub.MediaStager.
// Set StageFn before calling Stage.
type MediaStager struct {
	StageFn func(ctx context.Context, ref string) (string, func(), error)
}

// Stage delegates to StageFn.
func (s *MediaStager) Stage(ctx context.Context, ref string) (string, func(), error) {
	return s.StageFn(ctx, ref)
}

// MediaUploader is a test double for notionpub.MediaUploader.
type MediaUploader struct {
	UploadImageFn func(ctx context.Context, path string) (string, error)
	UploadCoverFn func(ctx context.Context, path string) (string, error)
}

// UploadImage delegates to UploadImageFn.
func (u *MediaUploader) UploadImage(ctx context.Context, path string) (string, error) {
	return u.UploadImageFn(ctx, path)
}

// UploadCover delegates to UploadCoverFn.
func (u *MediaUploader) UploadCover(ctx context.Context, path string) (string, error) {
	return u.UploadCoverFn(ctx, path)
}

// DraftCreator is a test double for notionpub.DraftCreator.
// Set CreateDraftFn before calling CreateDraft.
type DraftCreator struct {
	CreateDraftFn func(ctx context.Context, a notionpub.Article) (string, error)
}

// CreateDraft delegates to CreateDraftFn.
func (d *DraftCreator) CreateDraft(ctx context.Context, a notionpub.Article) (string, error) {
	return d.CreateDraftFn(ctx, a)
}

// Summarizer is a test double for notionpub.Summarizer.
// Set SummarizeFn before calling Summarize.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, content string) (string, error)
}

// Summarize delegates to SummarizeFn.
func (s *Summarizer) Summarize(ctx context.Context, content string) (string, error) {
	return s.SummarizeFn(ctx, content)
}
