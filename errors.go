package notionpub

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a config or article failed validation.
	ErrValidation = errors.New("validation error")

	// ErrMalformedMarkup indicates markup the renderer cannot parse.
	ErrMalformedMarkup = errors.New("malformed markup")

	// ErrTreeTooDeep indicates a block tree nested beyond the allowed depth.
	ErrTreeTooDeep = errors.New("block tree too deep")

	// ErrUnresolvedMedia indicates an image reference that could not be
	// resolved to a readable file.
	ErrUnresolvedMedia = errors.New("unresolved media")

	// ErrNotFound indicates the requested remote object does not exist.
	ErrNotFound = errors.New("not found")
)
