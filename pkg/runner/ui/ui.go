package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/grouping"
	"tableflip.dev/agenda/pkg/store"
	"tableflip.dev/agenda/pkg/tui"
)

// UI launches the interactive board.
type UI struct {
	Mode        grouping.Mode
	Persistence store.Persistence
}

func (n *UI) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not start ui, no persistence")
	}

	svc := &app.Service{Persistence: n.Persistence}
	m := tui.New(svc, app.State{Mode: n.Mode})
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return err
	}
	return nil
}
