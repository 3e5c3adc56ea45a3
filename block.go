package notionpub

import "strings"

// BlockKind identifies the type of a content block.
type BlockKind int

const (
	KindOther BlockKind = iota // Any type without a markup representation.
	KindParagraph
	KindHeading1
	KindHeading2
	KindHeading3
	KindBulletedListItem
	KindNumberedListItem
	KindImage
	KindQuote
	KindColumnList
	KindColumn
)

var kindNames = map[BlockKind]string{
	KindParagraph:        "paragraph",
	KindHeading1:         "heading_1",
	KindHeading2:         "heading_2",
	KindHeading3:         "heading_3",
	KindBulletedListItem: "bulleted_list_item",
	KindNumberedListItem: "numbered_list_item",
	KindImage:            "image",
	KindQuote:            "quote",
	KindColumnList:       "column_list",
	KindColumn:           "column",
}

// String returns the content API type name of the kind.
func (k BlockKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "other"
}

// ParseBlockKind maps a content API type name to a BlockKind.
// Unknown names map to KindOther.
func ParseBlockKind(name string) BlockKind {
	for k, n := range kindNames {
		if n == name {
			return k
		}
	}
	return KindOther
}

// MediaSource indicates where an image is hosted.
type MediaSource int

const (
	MediaExternal MediaSource = iota // Linked from an external URL.
	MediaFile                        // Uploaded to and hosted by the content API.
)

// Media references an image owned by an image block.
type Media struct {
	Source      MediaSource
	ExternalURL string
	FileURL     string
}

// URL returns the locator to use for the media: the external URL for
// external media, the hosted file URL otherwise.
func (m Media) URL() string {
	if m.Source == MediaExternal {
		return m.ExternalURL
	}
	return m.FileURL
}

// Block is a node in a content tree. Blocks are snapshots of remote state
// and are not modified after construction.
type Block struct {
	ID       string
	Kind     BlockKind
	Text     []string // plain-text runs in order
	Media    *Media   // image blocks only
	Children []Block  // visual order
}

// PlainText returns the block's text runs joined together.
func (b Block) PlainText() string {
	return strings.Join(b.Text, "")
}
