package notionpub

import (
	"context"
	"fmt"
)

// Article is a styled article ready to be submitted as a draft.
type Article struct {
	Title           string
	Author          string
	Digest          string
	Content         string // styled HTML body
	ThumbMediaID    string // cover image, as returned by MediaUploader.UploadCover
	NeedOpenComment bool
}

// Validate checks the fields the publishing platform rejects when missing.
func (a Article) Validate() error {
	if a.Title == "" {
		return fmt.Errorf("article title is required: %w", ErrValidation)
	}
	if a.Content == "" {
		return fmt.Errorf("article content is required: %w", ErrValidation)
	}
	return nil
}

// DraftCreator submits articles as drafts on the publishing platform.
type DraftCreator interface {
	// CreateDraft returns the platform's media ID for the new draft.
	CreateDraft(ctx context.Context, a Article) (string, error)
}
