package bubbletea

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/notionpub"
	"github.com/mattn/go-runewidth"
)

var _ tea.Model = Model{}

const defaultWidth = 80

// Model is the Bubble Tea model for the page picker.
type Model struct {
	// Input is the query input component. Exported for test access.
	Input textinput.Model

	ctx    context.Context
	search SearchFunc
	keys   KeyMap
	styles Styles
	width  int

	results   []notionpub.PageRef
	cursor    int
	lastQuery string // query the current results belong to
	searching bool
	searched  bool

	selected *notionpub.PageRef
	err      error
}

// New creates a picker that searches with search. A non-empty query is
// searched as soon as the program starts.
func New(ctx context.Context, search SearchFunc, theme notionpub.Theme, query string) Model {
	ti := textinput.New()
	ti.Placeholder = "Search pages..."
	ti.Prompt = "> "
	ti.SetValue(query)
	ti.Focus()
	ti.CharLimit = 0

	return Model{
		Input:  ti,
		ctx:    ctx,
		search: search,
		keys:   DefaultKeyMap(),
		styles: NewStyles(theme),
		width:  defaultWidth,
	}
}

// Selected returns the page the user picked, if any.
func (m Model) Selected() (notionpub.PageRef, bool) {
	if m.selected == nil {
		return notionpub.PageRef{}, false
	}
	return *m.selected, true
}

// Results returns the current search results.
func (m Model) Results() []notionpub.PageRef { return m.results }

// Cursor returns the index of the highlighted result.
func (m Model) Cursor() int { return m.cursor }

// Searching reports whether a search is in flight.
func (m Model) Searching() bool { return m.searching }

// Err returns the last search error, if any.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if q := strings.TrimSpace(m.Input.Value()); q != "" {
		return tea.Batch(textinput.Blink, m.searchCmd(q))
	}
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.Input.Width = max(msg.Width-runewidth.StringWidth(m.Input.Prompt)-1, 1)
		return m, nil

	case SearchResultMsg:
		// Results for a query the user has since replaced are stale.
		if msg.Query != strings.TrimSpace(m.Input.Value()) {
			return m, nil
		}
		m.searching = false
		m.searched = true
		m.err = msg.Err
		m.results = msg.Results
		m.lastQuery = msg.Query
		m.cursor = 0
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// submit selects the highlighted result when the results match the current
// query, and searches otherwise.
func (m Model) submit() (tea.Model, tea.Cmd) {
	q := strings.TrimSpace(m.Input.Value())
	if q == "" || m.searching {
		return m, nil
	}
	if q == m.lastQuery && len(m.results) > 0 {
		sel := m.results[m.cursor]
		m.selected = &sel
		return m, tea.Quit
	}
	m.searching = true
	m.err = nil
	return m, m.searchCmd(q)
}

func (m Model) searchCmd(q string) tea.Cmd {
	ctx, search := m.ctx, m.search
	return func() tea.Msg {
		refs, err := search(ctx, q)
		return SearchResultMsg{Query: q, Results: refs, Err: err}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Accent.Render("Search pages"))
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	b.WriteString("\n\n")

	switch {
	case m.searching:
		b.WriteString(m.styles.Muted.Render("Searching..."))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case m.searched && len(m.results) == 0:
		b.WriteString(m.styles.Muted.Render("No results found."))
		b.WriteString("\n")
	}

	for i, r := range m.results {
		b.WriteString(m.resultLine(i, r))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("↑/↓ move · Enter search/select · Esc quit"))
	return b.String()
}

// resultLine renders a result as "[title] ID: id", shortening the title so
// the line fits the terminal width.
func (m Model) resultLine(i int, r notionpub.PageRef) string {
	marker := "  "
	if i == m.cursor {
		marker = "▸ "
	}
	suffix := " ID: " + r.ID
	room := m.width - runewidth.StringWidth(marker) - runewidth.StringWidth(suffix) - 2
	title := r.Title
	if room < 1 {
		title = ""
	} else {
		title = runewidth.Truncate(title, room, "…")
	}
	line := marker + "[" + title + "]" + suffix
	if i == m.cursor {
		return m.styles.Selected.Render(line)
	}
	return line
}
