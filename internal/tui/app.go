package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// App runs the preview of one day.
type App struct {
	model      *Model
	dispatcher *Dispatcher
}

// NewApp returns an App for a model whose loader delivers through
// dispatcher.
func NewApp(model *Model, dispatcher *Dispatcher) *App {
	return &App{model: model, dispatcher: dispatcher}
}

// Run blocks until the user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	p := tea.NewProgram(a.model, tea.WithAltScreen(), tea.WithContext(ctx))
	a.dispatcher.Attach(p)
	defer a.model.page.Unmount()
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running preview: %w", err)
	}
	return nil
}
