package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/fwojciec/notionpub"
)

// Interface compliance checks.
var (
	_ notionpub.BlockSource = (*Client)(nil)
	_ notionpub.Searcher    = (*Client)(nil)
)

// Client reads pages from the Notion API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	maxDepth   int
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the API base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithMaxDepth bounds how deep Blocks expands nested children. Blocks
// nested deeper fail with [notionpub.ErrTreeTooDeep].
func WithMaxDepth(n int) Option {
	return func(c *Client) { c.maxDepth = n }
}

// New creates a new Notion [Client] with the given integration token.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		maxDepth:   defaultMaxDepth,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// PageTitle returns the plain text of the page's title property, or
// "Untitled" when the page has none.
func (c *Client) PageTitle(ctx context.Context, pageID string) (string, error) {
	var page apiPage
	if err := c.do(ctx, http.MethodGet, "/v1/pages/"+url.PathEscape(pageID), nil, &page); err != nil {
		return "", err
	}
	return page.title(), nil
}

// Blocks returns the complete block tree of a page. Every page of results
// is fetched and blocks with children are expanded recursively.
func (c *Client) Blocks(ctx context.Context, pageID string) ([]notionpub.Block, error) {
	return c.children(ctx, pageID, 1)
}

func (c *Client) children(ctx context.Context, blockID string, depth int) ([]notionpub.Block, error) {
	if depth > c.maxDepth {
		return nil, fmt.Errorf("notion: block %s: %w", blockID, notionpub.ErrTreeTooDeep)
	}
	var raw []apiBlock
	cursor := ""
	for {
		path := "/v1/blocks/" + url.PathEscape(blockID) + "/children"
		if cursor != "" {
			path += "?start_cursor=" + url.QueryEscape(cursor)
		}
		var list apiBlockList
		if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
			return nil, err
		}
		raw = append(raw, list.Results...)
		if !list.HasMore || list.NextCursor == nil || *list.NextCursor == "" {
			break
		}
		cursor = *list.NextCursor
	}

	blocks := make([]notionpub.Block, 0, len(raw))
	for _, b := range raw {
		block := toBlock(b)
		if b.HasChildren {
			kids, err := c.children(ctx, b.ID, depth+1)
			if err != nil {
				return nil, err
			}
			block.Children = kids
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

// Search returns up to five pages whose titles match query.
func (c *Client) Search(ctx context.Context, query string) ([]notionpub.PageRef, error) {
	req := apiSearchRequest{
		Query:    query,
		Filter:   apiSearchFilter{Property: "object", Value: "page"},
		PageSize: searchPageSize,
	}
	var resp apiSearchResponse
	if err := c.do(ctx, http.MethodPost, "/v1/search", req, &resp); err != nil {
		return nil, err
	}
	refs := make([]notionpub.PageRef, 0, len(resp.Results))
	for _, p := range resp.Results {
		refs = append(refs, notionpub.PageRef{ID: p.ID, Title: p.title()})
	}
	return refs, nil
}

// do sends a request with an optional JSON body and decodes the JSON
// response into out.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("notion: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("notion: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", apiVersion)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notion: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return parseHTTPError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("notion: decode response: %w", err)
	}
	return nil
}

func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("notion: HTTP %d (failed to read body: %w)", resp.StatusCode, err)
	}
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Code == "" {
		err = fmt.Errorf("notion: HTTP %d: %s", resp.StatusCode, string(body))
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %w", err, notionpub.ErrNotFound)
		}
		return err
	}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("notion: %s: %s: %w", apiErr.Code, apiErr.Message, notionpub.ErrNotFound)
	}
	return fmt.Errorf("notion: %s: %s", apiErr.Code, apiErr.Message)
}
