// Package bubbletea provides a Bubble Tea page picker: type a query, browse
// matching pages and pick one to publish.
package bubbletea

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/notionpub"
)

// SearchFunc finds pages matching query.
type SearchFunc func(ctx context.Context, query string) ([]notionpub.PageRef, error)

// SearchResultMsg delivers the outcome of a search to the model.
type SearchResultMsg struct {
	Query   string
	Results []notionpub.PageRef
	Err     error
}

// Run runs the picker until the user selects a page or quits, and returns
// the final model. The context is used for graceful shutdown: when
// cancelled, the program quits.
func Run(ctx context.Context, m Model) (Model, error) {
	p := tea.NewProgram(m)
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	fm, err := p.Run()
	if err != nil {
		return m, err
	}
	final, ok := fm.(Model)
	if !ok {
		return m, fmt.Errorf("unexpected model type %T", fm)
	}
	return final, nil
}
