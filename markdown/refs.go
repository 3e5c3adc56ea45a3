package markdown

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	imagePattern   = regexp.MustCompile(`!\[(.*?)\]\((.*?)\)`)
	headingPattern = regexp.MustCompile(`(?m)^# (.*)$`)
)

// ImageRefs returns the distinct image locators referenced in doc, in order
// of first appearance.
func ImageRefs(doc string) []string {
	var refs []string
	seen := make(map[string]bool)
	for _, m := range imagePattern.FindAllStringSubmatch(doc, -1) {
		ref := m[2]
		if seen[ref] {
			continue
		}
		seen[ref] = true
		refs = append(refs, ref)
	}
	return refs
}

// ReplaceRef replaces every occurrence of the locator old with new.
func ReplaceRef(doc, old, new string) string {
	if old == "" {
		return doc
	}
	return strings.ReplaceAll(doc, old, new)
}

// AppendFooter appends footer to doc, separated by a blank line. Relative
// image paths in the footer are made absolute against footerDir so they
// still resolve once the footer is part of another document.
func AppendFooter(doc, footer, footerDir string) string {
	footer = imagePattern.ReplaceAllStringFunc(footer, func(match string) string {
		m := imagePattern.FindStringSubmatch(match)
		alt, ref := m[1], m[2]
		if strings.HasPrefix(ref, "http") || filepath.IsAbs(ref) {
			return match
		}
		abs, err := filepath.Abs(filepath.Join(footerDir, ref))
		if err != nil {
			return match
		}
		return "![" + alt + "](" + abs + ")"
	})
	return doc + "\n\n" + footer
}

// FirstHeading returns the text of the first level-1 heading in doc.
func FirstHeading(doc string) (string, bool) {
	m := headingPattern.FindStringSubmatch(doc)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}
