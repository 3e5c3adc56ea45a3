package notion_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/notionpub"
	"github.com/fwojciec/notionpub/notion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Headers(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "2022-06-28", r.Header.Get("Notion-Version"))
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/pages/abc", r.URL.Path)
		_, _ = io.WriteString(w, `{"id":"abc","properties":{}}`)
	}))
	defer srv.Close()

	client := notion.New("secret", notion.WithBaseURL(srv.URL))
	title, err := client.PageTitle(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "Untitled", title)
}

func TestClient_PageTitle(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{
			"id": "abc",
			"properties": {
				"Tags": {"type": "multi_select", "multi_select": []},
				"Name": {"type": "title", "title": [{"plain_text": "Hello "}, {"plain_text": "World"}]}
			}
		}`)
	}))
	defer srv.Close()

	client := notion.New("k", notion.WithBaseURL(srv.URL))
	title, err := client.PageTitle(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "Hello World", title)
}

func TestClient_Blocks(t *testing.T) {
	t.Parallel()

	t.Run("maps block types", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{
				"results": [
					{"id": "1", "type": "heading_1", "has_children": false, "heading_1": {"rich_text": [{"plain_text": "Title"}]}},
					{"id": "2", "type": "paragraph", "has_children": false, "paragraph": {"rich_text": [{"plain_text": "a"}, {"plain_text": "b"}]}},
					{"id": "3", "type": "image", "has_children": false, "image": {"type": "external", "external": {"url": "http://x/y.png"}}},
					{"id": "4", "type": "image", "has_children": false, "image": {"type": "file", "file": {"url": "http://s3/z.png", "expiry_time": "2026-01-01T00:00:00.000Z"}}},
					{"id": "5", "type": "toggle", "has_children": false, "toggle": {"rich_text": [{"plain_text": "hidden"}]}},
					{"id": "6", "type": "divider", "has_children": false, "divider": {}}
				],
				"has_more": false,
				"next_cursor": null
			}`)
		}))
		defer srv.Close()

		client := notion.New("k", notion.WithBaseURL(srv.URL))
		blocks, err := client.Blocks(context.Background(), "page")
		require.NoError(t, err)
		require.Len(t, blocks, 6)

		assert.Equal(t, notionpub.KindHeading1, blocks[0].Kind)
		assert.Equal(t, "Title", blocks[0].PlainText())
		assert.Equal(t, []string{"a", "b"}, blocks[1].Text)

		require.NotNil(t, blocks[2].Media)
		assert.Equal(t, notionpub.MediaExternal, blocks[2].Media.Source)
		assert.Equal(t, "http://x/y.png", blocks[2].Media.URL())

		require.NotNil(t, blocks[3].Media)
		assert.Equal(t, notionpub.MediaFile, blocks[3].Media.Source)
		assert.Equal(t, "http://s3/z.png", blocks[3].Media.URL())

		assert.Equal(t, notionpub.KindOther, blocks[4].Kind)
		assert.Equal(t, notionpub.KindOther, blocks[5].Kind)
		assert.Empty(t, blocks[5].Text)
	})

	t.Run("follows pagination cursors", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Query().Get("start_cursor") {
			case "":
				_, _ = io.WriteString(w, `{"results": [{"id": "1", "type": "paragraph", "paragraph": {"rich_text": [{"plain_text": "one"}]}}], "has_more": true, "next_cursor": "c2"}`)
			case "c2":
				_, _ = io.WriteString(w, `{"results": [{"id": "2", "type": "paragraph", "paragraph": {"rich_text": [{"plain_text": "two"}]}}], "has_more": false, "next_cursor": null}`)
			default:
				t.Errorf("unexpected cursor %q", r.URL.Query().Get("start_cursor"))
			}
		}))
		defer srv.Close()

		client := notion.New("k", notion.WithBaseURL(srv.URL))
		blocks, err := client.Blocks(context.Background(), "page")
		require.NoError(t, err)
		require.Len(t, blocks, 2)
		assert.Equal(t, "one", blocks[0].PlainText())
		assert.Equal(t, "two", blocks[1].PlainText())
	})

	t.Run("expands children recursively", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/v1/blocks/page/children":
				_, _ = io.WriteString(w, `{"results": [{"id": "item", "type": "bulleted_list_item", "has_children": true, "bulleted_list_item": {"rich_text": [{"plain_text": "A"}]}}], "has_more": false}`)
			case "/v1/blocks/item/children":
				_, _ = io.WriteString(w, `{"results": [{"id": "nested", "type": "paragraph", "has_children": false, "paragraph": {"rich_text": [{"plain_text": "Nested"}]}}], "has_more": false}`)
			default:
				http.NotFound(w, r)
			}
		}))
		defer srv.Close()

		client := notion.New("k", notion.WithBaseURL(srv.URL))
		blocks, err := client.Blocks(context.Background(), "page")
		require.NoError(t, err)
		require.Len(t, blocks, 1)
		assert.Equal(t, notionpub.KindBulletedListItem, blocks[0].Kind)
		require.Len(t, blocks[0].Children, 1)
		assert.Equal(t, "Nested", blocks[0].Children[0].PlainText())
	})

	t.Run("depth bound", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			_, _ = io.WriteString(w, `{"results": [{"id": "loop", "type": "quote", "has_children": true, "quote": {"rich_text": []}}], "has_more": false}`)
		}))
		defer srv.Close()

		client := notion.New("k", notion.WithBaseURL(srv.URL), notion.WithMaxDepth(3))
		_, err := client.Blocks(context.Background(), "page")
		assert.ErrorIs(t, err, notionpub.ErrTreeTooDeep)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"object": "error", "status": 404, "code": "object_not_found", "message": "Could not find block"}`)
		}))
		defer srv.Close()

		client := notion.New("k", notion.WithBaseURL(srv.URL))
		_, err := client.Blocks(context.Background(), "missing")
		assert.ErrorIs(t, err, notionpub.ErrNotFound)
		assert.Contains(t, err.Error(), "object_not_found")
	})

	t.Run("other API errors are surfaced", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"object": "error", "status": 401, "code": "unauthorized", "message": "API token is invalid."}`)
		}))
		defer srv.Close()

		client := notion.New("k", notion.WithBaseURL(srv.URL))
		_, err := client.Blocks(context.Background(), "page")
		require.Error(t, err)
		assert.NotErrorIs(t, err, notionpub.ErrNotFound)
		assert.Equal(t, "notion: unauthorized: API token is invalid.", err.Error())
	})

	t.Run("non JSON error body", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = io.WriteString(w, "upstream down")
		}))
		defer srv.Close()

		client := notion.New("k", notion.WithBaseURL(srv.URL))
		_, err := client.Blocks(context.Background(), "page")
		require.Error(t, err)
		assert.Equal(t, "notion: HTTP 502: upstream down", err.Error())
	})
}

func TestClient_Search(t *testing.T) {
	t.Parallel()

	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/search", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &captured)
		_, _ = io.WriteString(w, `{"results": [
			{"id": "p1", "properties": {"title": {"type": "title", "title": [{"plain_text": "First"}]}}},
			{"id": "p2", "properties": {}}
		]}`)
	}))
	defer srv.Close()

	client := notion.New("k", notion.WithBaseURL(srv.URL))
	refs, err := client.Search(context.Background(), "draft")
	require.NoError(t, err)

	assert.Equal(t, []notionpub.PageRef{
		{ID: "p1", Title: "First"},
		{ID: "p2", Title: "Untitled"},
	}, refs)
	assert.Equal(t, "draft", captured["query"])
	assert.Equal(t, float64(5), captured["page_size"])
	assert.Equal(t, map[string]any{"property": "object", "value": "page"}, captured["filter"])
}
