// Package notion implements [notionpub.BlockSource] and [notionpub.Searcher]
// for the Notion REST API.
package notion

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/notionpub"
)

const (
	defaultBaseURL  = "https://api.notion.com"
	defaultMaxDepth = 32
	apiVersion      = "2022-06-28"
	searchPageSize  = 5
	untitled        = "Untitled"
)

type apiRichText struct {
	PlainText string `json:"plain_text"`
}

type apiFile struct {
	URL string `json:"url"`
}

// apiBlockBody is the type-specific payload of a block, stored under a key
// named after the block type.
type apiBlockBody struct {
	RichText []apiRichText `json:"rich_text"`

	// image
	Type     string   `json:"type"`
	External *apiFile `json:"external"`
	File     *apiFile `json:"file"`
}

type apiBlock struct {
	ID          string
	Type        string
	HasChildren bool
	Body        apiBlockBody
}

func (b *apiBlock) UnmarshalJSON(data []byte) error {
	var head struct {
		ID          string `json:"id"`
		Type        string `json:"type"`
		HasChildren bool   `json:"has_children"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	b.ID, b.Type, b.HasChildren = head.ID, head.Type, head.HasChildren
	b.Body = apiBlockBody{}
	if raw, ok := fields[head.Type]; ok && head.Type != "" {
		if err := json.Unmarshal(raw, &b.Body); err != nil {
			return fmt.Errorf("%s block %s: %w", head.Type, head.ID, err)
		}
	}
	return nil
}

type apiBlockList struct {
	Results    []apiBlock `json:"results"`
	HasMore    bool       `json:"has_more"`
	NextCursor *string    `json:"next_cursor"`
}

type apiProperty struct {
	Type  string        `json:"type"`
	Title []apiRichText `json:"title"`
}

type apiPage struct {
	ID         string                 `json:"id"`
	Properties map[string]apiProperty `json:"properties"`
}

// title returns the joined plain text of the page's title property.
func (p apiPage) title() string {
	for _, prop := range p.Properties {
		if prop.Type == "title" {
			return joinText(prop.Title)
		}
	}
	return untitled
}

type apiSearchFilter struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

type apiSearchRequest struct {
	Query    string          `json:"query"`
	Filter   apiSearchFilter `json:"filter"`
	PageSize int             `json:"page_size"`
}

type apiSearchResponse struct {
	Results []apiPage `json:"results"`
}

type apiErrorResponse struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func joinText(runs []apiRichText) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.PlainText)
	}
	return b.String()
}

// toBlock maps an API block to the domain model. Children are attached by
// the caller.
func toBlock(b apiBlock) notionpub.Block {
	block := notionpub.Block{
		ID:   b.ID,
		Kind: notionpub.ParseBlockKind(b.Type),
	}
	for _, r := range b.Body.RichText {
		block.Text = append(block.Text, r.PlainText)
	}
	if block.Kind == notionpub.KindImage {
		m := &notionpub.Media{Source: notionpub.MediaFile}
		if b.Body.Type == "external" {
			m.Source = notionpub.MediaExternal
		}
		if b.Body.External != nil {
			m.ExternalURL = b.Body.External.URL
		}
		if b.Body.File != nil {
			m.FileURL = b.Body.File.URL
		}
		block.Media = m
	}
	return block
}
