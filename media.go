package notionpub

import "context"

// MediaStager makes an image reference available as a local file.
// Remote references are downloaded; local ones are resolved in place.
// The returned cleanup func must be called once the file is no longer
// needed. Unresolvable references return an error wrapping
// ErrUnresolvedMedia.
type MediaStager interface {
	Stage(ctx context.Context, ref string) (path string, cleanup func(), err error)
}

// MediaUploader uploads local images to the publishing platform.
type MediaUploader interface {
	// UploadImage returns the hosted URL to use inside article content.
	UploadImage(ctx context.Context, path string) (string, error)
	// UploadCover returns the media ID of a permanent cover image.
	UploadCover(ctx context.Context, path string) (string, error)
}
