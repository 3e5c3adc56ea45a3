// Package media stages image references as local files for upload.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fwojciec/notionpub"
	"github.com/google/uuid"
)

// Interface compliance check.
var _ notionpub.MediaStager = (*Stager)(nil)

// Stager downloads remote images into a private temporary directory and
// resolves local references against a base directory. Close removes the
// directory and anything left in it.
type Stager struct {
	dir        string
	baseDir    string
	httpClient *http.Client

	closeOnce sync.Once
	closeErr  error
}

// Option configures a [Stager].
type Option func(*Stager)

// WithBaseDir sets the directory relative local references resolve
// against, typically the directory of the markdown file being published.
func WithBaseDir(dir string) Option {
	return func(s *Stager) { s.baseDir = dir }
}

// WithHTTPClient sets a custom HTTP client for downloads.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Stager) { s.httpClient = hc }
}

// NewStager creates a Stager and its temporary directory.
func NewStager(opts ...Option) (*Stager, error) {
	dir, err := os.MkdirTemp("", "notion-pub-")
	if err != nil {
		return nil, fmt.Errorf("media: create temp dir: %w", err)
	}
	s := &Stager{
		dir:        dir,
		httpClient: http.DefaultClient,
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Dir returns the temporary directory owned by the Stager.
func (s *Stager) Dir() string { return s.dir }

// Stage returns a local path for ref. Remote references are downloaded and
// the returned cleanup deletes the download; for local files cleanup does
// nothing.
func (s *Stager) Stage(ctx context.Context, ref string) (string, func(), error) {
	if isRemote(ref) {
		return s.download(ctx, ref)
	}
	path := ref
	if !filepath.IsAbs(path) && s.baseDir != "" {
		path = filepath.Join(s.baseDir, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("media: %s: %w", path, notionpub.ErrUnresolvedMedia)
		}
		return "", nil, fmt.Errorf("media: %w", err)
	}
	if info.IsDir() {
		return "", nil, fmt.Errorf("media: %s is a directory: %w", path, notionpub.ErrUnresolvedMedia)
	}
	return path, func() {}, nil
}

func (s *Stager) download(ctx context.Context, ref string) (string, func(), error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return "", nil, fmt.Errorf("media: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("media: download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("media: download %s: HTTP %d: %w", ref, resp.StatusCode, notionpub.ErrUnresolvedMedia)
	}

	path := filepath.Join(s.dir, "dl_"+uuid.NewString()+".png")
	f, err := os.Create(path)
	if err != nil {
		return "", nil, fmt.Errorf("media: %w", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(path)
		return "", nil, fmt.Errorf("media: download %s: %w", ref, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", nil, fmt.Errorf("media: %w", err)
	}
	return path, func() { os.Remove(path) }, nil
}

// Close removes the temporary directory. It is safe to call more than
// once.
func (s *Stager) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = os.RemoveAll(s.dir)
	})
	return s.closeErr
}

func isRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
