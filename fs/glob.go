package fs

import (
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Expand returns the markdown files matching pattern, sorted. Patterns
// support ** for recursive matching and may be absolute or relative to the
// working directory.
func Expand(pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
	}
	base, rest := doublestar.SplitPattern(filepath.ToSlash(pattern))

	info, err := os.Stat(filepath.FromSlash(base))
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path must be a directory: %s", base)
	}

	var matches []string
	err = doublestar.GlobWalk(os.DirFS(filepath.FromSlash(base)), rest, func(path string, d iofs.DirEntry) error {
		if d.IsDir() || !isMarkdown(path) {
			return nil
		}
		matches = append(matches, filepath.Join(filepath.FromSlash(base), filepath.FromSlash(path)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error matching pattern: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}
