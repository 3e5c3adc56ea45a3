package bubbletea_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/fwojciec/notionpub"
	bt "github.com/fwojciec/notionpub/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pages = []notionpub.PageRef{
	{ID: "p1", Title: "First draft"},
	{ID: "p2", Title: "Second draft"},
	{ID: "p3", Title: "Third draft"},
}

func staticSearch(refs []notionpub.PageRef, err error) bt.SearchFunc {
	return func(context.Context, string) ([]notionpub.PageRef, error) {
		return refs, err
	}
}

// updateModel sends a message and returns the updated Model and command.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) (bt.Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model, cmd
}

// searched returns a model with query typed and its search completed.
func searched(t *testing.T, search bt.SearchFunc, query string) bt.Model {
	t.Helper()
	m := bt.New(context.Background(), search, notionpub.DefaultTheme(), "")
	m.Input.SetValue(query)
	m, cmd := updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.Searching())
	m, _ = updateModel(t, m, cmd())
	assert.False(t, m.Searching())
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel_Search(t *testing.T) {
	t.Parallel()

	t.Run("enter runs the search", func(t *testing.T) {
		t.Parallel()
		var got string
		search := func(_ context.Context, q string) ([]notionpub.PageRef, error) {
			got = q
			return pages, nil
		}
		m := searched(t, search, "  draft ")
		assert.Equal(t, "draft", got)
		assert.Equal(t, pages, m.Results())
		assert.Equal(t, 0, m.Cursor())
	})

	t.Run("empty query does nothing", func(t *testing.T) {
		t.Parallel()
		m := bt.New(context.Background(), staticSearch(pages, nil), notionpub.DefaultTheme(), "")
		m, cmd := updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		assert.Nil(t, cmd)
		assert.False(t, m.Searching())
	})

	t.Run("stale results are ignored", func(t *testing.T) {
		t.Parallel()
		m := bt.New(context.Background(), staticSearch(pages, nil), notionpub.DefaultTheme(), "")
		m.Input.SetValue("new")
		m, _ = updateModel(t, m, bt.SearchResultMsg{Query: "old", Results: pages})
		assert.Empty(t, m.Results())
	})

	t.Run("error is shown", func(t *testing.T) {
		t.Parallel()
		m := searched(t, staticSearch(nil, errors.New("unauthorized")), "x")
		assert.EqualError(t, m.Err(), "unauthorized")
		assert.Contains(t, m.View(), "Error: unauthorized")
	})

	t.Run("no results", func(t *testing.T) {
		t.Parallel()
		m := searched(t, staticSearch(nil, nil), "x")
		assert.Contains(t, m.View(), "No results found.")
	})

	t.Run("initial query searches on init", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		search := func(context.Context, string) ([]notionpub.PageRef, error) {
			calls.Add(1)
			return pages, nil
		}
		m := bt.New(context.Background(), search, notionpub.DefaultTheme(), "draft")
		tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))
		teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
			return bytes.Contains(out, []byte("Third draft"))
		}, teatest.WithDuration(5*time.Second))
		tm.Send(tea.KeyMsg{Type: tea.KeyEsc})
		tm.WaitFinished(t, teatest.WithFinalTimeout(5*time.Second))
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestModel_Navigation(t *testing.T) {
	t.Parallel()

	m := searched(t, staticSearch(pages, nil), "draft")

	m, _ = updateModel(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.Cursor(), "cursor stops at the top")

	m, _ = updateModel(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = updateModel(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = updateModel(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.Cursor(), "cursor stops at the bottom")

	m, _ = updateModel(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, m.Cursor())
	assert.Contains(t, m.View(), "▸ [Second draft] ID: p2")
}

func TestModel_Select(t *testing.T) {
	t.Parallel()

	t.Run("enter on results selects and quits", func(t *testing.T) {
		t.Parallel()
		m := searched(t, staticSearch(pages, nil), "draft")
		m, _ = updateModel(t, m, tea.KeyMsg{Type: tea.KeyDown})
		m, cmd := updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		assert.True(t, isQuit(cmd))

		sel, ok := m.Selected()
		require.True(t, ok)
		assert.Equal(t, pages[1], sel)
	})

	t.Run("editing the query searches again", func(t *testing.T) {
		t.Parallel()
		m := searched(t, staticSearch(pages, nil), "draft")
		m, _ = updateModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
		m, cmd := updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		assert.True(t, m.Searching())
		assert.False(t, isQuit(cmd))
		_, ok := m.Selected()
		assert.False(t, ok)
	})

	t.Run("escape quits without selection", func(t *testing.T) {
		t.Parallel()
		m := searched(t, staticSearch(pages, nil), "draft")
		m, cmd := updateModel(t, m, tea.KeyMsg{Type: tea.KeyEsc})
		assert.True(t, isQuit(cmd))
		_, ok := m.Selected()
		assert.False(t, ok)
	})
}

func TestModel_TruncatesTitles(t *testing.T) {
	t.Parallel()

	long := []notionpub.PageRef{{ID: "abc", Title: strings.Repeat("很长的标题", 10)}}
	m := searched(t, staticSearch(long, nil), "x")
	m, _ = updateModel(t, m, tea.WindowSizeMsg{Width: 30, Height: 10})

	for _, line := range strings.Split(m.View(), "\n") {
		if strings.Contains(line, "ID: abc") {
			assert.LessOrEqual(t, runewidth.StringWidth(line), 30)
			assert.Contains(t, line, "…")
			return
		}
	}
	t.Fatal("result line not rendered")
}

func TestModel_Teatest(t *testing.T) {
	t.Parallel()

	m := bt.New(context.Background(), staticSearch(pages, nil), notionpub.DefaultTheme(), "")
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	tm.Type("draft")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("First draft")) &&
			bytes.Contains(out, []byte("Second draft"))
	}, teatest.WithDuration(5*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyDown})
	tm.Send(tea.KeyMsg{Type: tea.KeyDown})
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	fm := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
	final, ok := fm.(bt.Model)
	require.True(t, ok)
	sel, ok := final.Selected()
	require.True(t, ok)
	assert.Equal(t, "p3", sel.ID)
}
