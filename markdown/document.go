package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// Meta is the optional front matter of a local Markdown document.
type Meta struct {
	Title  string `yaml:"title"`
	Digest string `yaml:"digest"`
	Author string `yaml:"author"`
	Cover  string `yaml:"cover"`
}

// Document is a local Markdown document split into front matter and body.
type Document struct {
	Meta Meta
	Body string
}

// ParseDocument splits source into front matter and body. Documents without
// front matter are returned whole as the body.
func ParseDocument(source []byte) (Document, error) {
	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return Document{}, fmt.Errorf("parse front matter: %w", err)
	}
	return Document{Meta: meta, Body: string(body)}, nil
}

// Title returns the document title: the front matter title if set,
// otherwise the first level-1 heading, otherwise fallback.
func (d Document) Title(fallback string) string {
	if d.Meta.Title != "" {
		return d.Meta.Title
	}
	if h, ok := FirstHeading(d.Body); ok {
		return h
	}
	return fallback
}
