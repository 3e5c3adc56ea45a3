// Package yaml loads style sheet overrides from YAML files.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/notionpub"
	"gopkg.in/yaml.v3"
)

// styleFile mirrors the on-disk style overrides. Omitted entries keep the
// base style.
type styleFile struct {
	H1              string `yaml:"h1"`
	H2              string `yaml:"h2"`
	H3              string `yaml:"h3"`
	Paragraph       string `yaml:"p"`
	InlineParagraph string `yaml:"inline_p"`
	BulletList      string `yaml:"ul"`
	OrderedList     string `yaml:"ol"`
	ListItem        string `yaml:"li"`
	ImageWrapper    string `yaml:"image_wrapper"`
	Image           string `yaml:"img"`
	Blockquote      string `yaml:"blockquote"`
	Code            string `yaml:"code"`
	Container       string `yaml:"container"`
}

// ParseStyleSheet decodes overrides from data and applies them to base.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func ParseStyleSheet(data []byte, base notionpub.StyleSheet) (notionpub.StyleSheet, error) {
	var f styleFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return notionpub.StyleSheet{}, fmt.Errorf("decode styles: %w", err)
	}
	return base.Merge(notionpub.StyleSheet{
		H1:              f.H1,
		H2:              f.H2,
		H3:              f.H3,
		Paragraph:       f.Paragraph,
		InlineParagraph: f.InlineParagraph,
		BulletList:      f.BulletList,
		OrderedList:     f.OrderedList,
		ListItem:        f.ListItem,
		ImageWrapper:    f.ImageWrapper,
		Image:           f.Image,
		Blockquote:      f.Blockquote,
		Code:            f.Code,
		Container:       f.Container,
	}), nil
}

// LoadStyleSheet reads overrides from the YAML file at path and applies
// them to base.
func LoadStyleSheet(path string, base notionpub.StyleSheet) (notionpub.StyleSheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return notionpub.StyleSheet{}, fmt.Errorf("read file: %w", err)
	}
	return ParseStyleSheet(data, base)
}
