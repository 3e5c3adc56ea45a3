package wechat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/fwojciec/notionpub"
)

// Interface compliance checks.
var (
	_ notionpub.MediaUploader = (*Client)(nil)
	_ notionpub.DraftCreator  = (*Client)(nil)
)

// Client talks to the WeChat Official Account API. The access token is
// fetched on first use and reused for the lifetime of the client.
type Client struct {
	appID      string
	secret     string
	baseURL    string
	httpClient *http.Client

	mu    sync.Mutex
	token string
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

// New creates a new WeChat [Client] for the given app credentials.
func New(appID, secret string, opts ...Option) *Client {
	c := &Client{
		appID:      appID,
		secret:     secret,
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Token returns an access token, requesting one on first call.
func (c *Client) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" {
		return c.token, nil
	}

	q := url.Values{}
	q.Set("grant_type", "client_credential")
	q.Set("appid", c.appID)
	q.Set("secret", c.secret)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+tokenPath+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("wechat: %w", err)
	}
	var resp apiTokenResponse
	if err := c.send(req, &resp); err != nil {
		return "", err
	}
	if err := resp.err(); err != nil {
		return "", fmt.Errorf("wechat: token: %w", err)
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("wechat: token: empty access_token")
	}
	c.token = resp.AccessToken
	return c.token, nil
}

// UploadImage uploads an image for use inside article content and returns
// its hosted URL.
func (c *Client) UploadImage(ctx context.Context, path string) (string, error) {
	var resp apiUploadImageResponse
	if err := c.upload(ctx, uploadImgPath, nil, path, &resp); err != nil {
		return "", err
	}
	if err := resp.err(); err != nil {
		return "", fmt.Errorf("wechat: upload image: %w", err)
	}
	if resp.URL == "" {
		return "", fmt.Errorf("wechat: upload image: no url in response")
	}
	return resp.URL, nil
}

// UploadCover uploads a permanent image and returns its media ID for use
// as an article thumbnail.
func (c *Client) UploadCover(ctx context.Context, path string) (string, error) {
	var resp apiMaterialResponse
	if err := c.upload(ctx, materialPath, url.Values{"type": {"image"}}, path, &resp); err != nil {
		return "", err
	}
	if err := resp.err(); err != nil {
		return "", fmt.Errorf("wechat: upload cover: %w", err)
	}
	if resp.MediaID == "" {
		return "", fmt.Errorf("wechat: upload cover: no media_id in response")
	}
	return resp.MediaID, nil
}

// CreateDraft submits a as a new draft and returns its media ID. Articles
// failing [notionpub.Article.Validate] are rejected before any request.
func (c *Client) CreateDraft(ctx context.Context, a notionpub.Article) (string, error) {
	if err := a.Validate(); err != nil {
		return "", fmt.Errorf("wechat: %w", err)
	}
	author := a.Author
	if author == "" {
		author = defaultAuthor
	}
	comment := 0
	if a.NeedOpenComment {
		comment = 1
	}
	body, err := json.Marshal(apiDraftRequest{Articles: []apiArticle{{
		Title:           a.Title,
		Author:          author,
		Digest:          a.Digest,
		Content:         a.Content,
		ThumbMediaID:    a.ThumbMediaID,
		NeedOpenComment: comment,
	}}})
	if err != nil {
		return "", fmt.Errorf("wechat: %w", err)
	}

	endpoint, err := c.endpoint(ctx, draftPath, nil)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("wechat: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp apiDraftResponse
	if err := c.send(req, &resp); err != nil {
		return "", err
	}
	if err := resp.err(); err != nil {
		return "", fmt.Errorf("wechat: create draft: %w", err)
	}
	if resp.MediaID == "" {
		return "", fmt.Errorf("wechat: create draft: no media_id in response")
	}
	return resp.MediaID, nil
}

// endpoint returns the URL of an authenticated API path.
func (c *Client) endpoint(ctx context.Context, path string, q url.Values) (string, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return "", err
	}
	if q == nil {
		q = url.Values{}
	}
	q.Set("access_token", token)
	return c.baseURL + path + "?" + q.Encode(), nil
}

// upload posts the file at path as the multipart "media" field.
func (c *Client) upload(ctx context.Context, path string, q url.Values, file string, out any) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("wechat: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, mediaField, filepath.Base(file)))
	h.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("wechat: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("wechat: read %s: %w", file, err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("wechat: %w", err)
	}

	endpoint, err := c.endpoint(ctx, path, q)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return fmt.Errorf("wechat: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.send(req, out)
}

// send performs req and decodes the JSON response into out.
func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("wechat: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("wechat: HTTP %d (failed to read body: %w)", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wechat: HTTP %d: %s", resp.StatusCode, string(data))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("wechat: decode response: %w", err)
	}
	return nil
}
