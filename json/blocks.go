package json

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fwojciec/notionpub"
)

// snapshot is the v1 wire format for a saved block tree.
type snapshot struct {
	Version int        `json:"version"`
	PageID  string     `json:"page_id"`
	Title   string     `json:"title"`
	SavedAt time.Time  `json:"saved_at"`
	Blocks  []blockDTO `json:"blocks"`
}

type blockDTO struct {
	ID       string     `json:"id"`
	Type     string     `json:"type"`
	Text     []string   `json:"text,omitempty"`
	Media    *mediaDTO  `json:"media,omitempty"`
	Children []blockDTO `json:"children,omitempty"`
}

type mediaDTO struct {
	Type        string `json:"type"`
	ExternalURL string `json:"external_url,omitempty"`
	FileURL     string `json:"file_url,omitempty"`
}

// Snapshot is a block tree captured from a page.
type Snapshot struct {
	PageID  string
	Title   string
	SavedAt time.Time
	Blocks  []notionpub.Block
}

// MarshalBlocks serializes a Snapshot to JSON in v1 format.
func MarshalBlocks(s Snapshot) ([]byte, error) {
	env := snapshot{
		Version: 1,
		PageID:  s.PageID,
		Title:   s.Title,
		SavedAt: s.SavedAt,
		Blocks:  marshalBlocks(s.Blocks),
	}
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalBlocks deserializes a Snapshot from JSON in v1 format.
func UnmarshalBlocks(data []byte) (Snapshot, error) {
	var env snapshot
	if err := json.Unmarshal(data, &env); err != nil {
		return Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if env.Version != 1 {
		return Snapshot{}, fmt.Errorf("unsupported snapshot version: %d", env.Version)
	}
	blocks, err := unmarshalBlocks(env.Blocks)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		PageID:  env.PageID,
		Title:   env.Title,
		SavedAt: env.SavedAt,
		Blocks:  blocks,
	}, nil
}

// SaveBlocks writes a Snapshot to a JSON file.
func SaveBlocks(path string, s Snapshot) error {
	data, err := MarshalBlocks(s)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return writeFile(path, data)
}

// LoadBlocks reads a Snapshot from a JSON file.
func LoadBlocks(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalBlocks(data)
}

func marshalBlocks(blocks []notionpub.Block) []blockDTO {
	if len(blocks) == 0 {
		return nil
	}
	out := make([]blockDTO, len(blocks))
	for i, b := range blocks {
		dto := blockDTO{
			ID:       b.ID,
			Type:     b.Kind.String(),
			Text:     b.Text,
			Children: marshalBlocks(b.Children),
		}
		if b.Media != nil {
			dto.Media = &mediaDTO{
				Type:        mediaType(b.Media.Source),
				ExternalURL: b.Media.ExternalURL,
				FileURL:     b.Media.FileURL,
			}
		}
		out[i] = dto
	}
	return out
}

func unmarshalBlocks(dtos []blockDTO) ([]notionpub.Block, error) {
	if len(dtos) == 0 {
		return nil, nil
	}
	out := make([]notionpub.Block, len(dtos))
	for i, dto := range dtos {
		children, err := unmarshalBlocks(dto.Children)
		if err != nil {
			return nil, err
		}
		b := notionpub.Block{
			ID:       dto.ID,
			Kind:     notionpub.ParseBlockKind(dto.Type),
			Text:     dto.Text,
			Children: children,
		}
		if dto.Media != nil {
			source, err := parseMediaType(dto.Media.Type)
			if err != nil {
				return nil, fmt.Errorf("block %s: %w", dto.ID, err)
			}
			b.Media = &notionpub.Media{
				Source:      source,
				ExternalURL: dto.Media.ExternalURL,
				FileURL:     dto.Media.FileURL,
			}
		}
		out[i] = b
	}
	return out, nil
}

func mediaType(s notionpub.MediaSource) string {
	if s == notionpub.MediaExternal {
		return "external"
	}
	return "file"
}

func parseMediaType(s string) (notionpub.MediaSource, error) {
	switch s {
	case "external":
		return notionpub.MediaExternal, nil
	case "file":
		return notionpub.MediaFile, nil
	default:
		return 0, fmt.Errorf("unknown media type: %q", s)
	}
}
