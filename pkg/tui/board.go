// Package tui provides the interactive board: cursor navigation plus
// keyboard-driven task moves that run through the same planning predicate
// as committed moves, so the preview shown in the status line can never
// disagree with the outcome.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/grouping"
	"tableflip.dev/agenda/pkg/reorder"
	"tableflip.dev/agenda/pkg/store"
	"tableflip.dev/agenda/pkg/task"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Complete key.Binding
	Refresh  key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	MoveUp:   key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("shift+↑", "move task up")),
	MoveDown: key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("shift+↓", "move task down")),
	Complete: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "complete")),
	Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	subheaderStyle = lipgloss.NewStyle().Bold(true).Faint(true)
	cursorStyle    = lipgloss.NewStyle().Reverse(true)
	faintStyle     = lipgloss.NewStyle().Faint(true)
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// Model is the interactive board.
type Model struct {
	Service *app.Service
	State   app.State

	rows   []grouping.Row
	cursor int
	notice string

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// New builds a board model over the service.
func New(svc *app.Service, state app.State) *Model {
	state.Mode = normalizeMode(state.Mode)
	return &Model{Service: svc, State: state}
}

func normalizeMode(m grouping.Mode) grouping.Mode {
	if m == "" {
		return grouping.ModeDate
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	m.refresh()
	return startWatchCmd(context.Background(), m.Service)
}

func (m *Model) refresh() {
	result, err := m.Service.Board(context.Background(), m.State, time.Now())
	if err != nil {
		m.notice = err.Error()
		return
	}
	m.rows = result.Rows
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.snapToTask(1)
}

// snapToTask advances the cursor in the given direction until it rests on a
// task row, if any exists.
func (m *Model) snapToTask(direction int) {
	if len(m.rows) == 0 {
		return
	}
	for i := m.cursor; i >= 0 && i < len(m.rows); i += direction {
		if m.rows[i].Kind == grouping.RowTask {
			m.cursor = i
			return
		}
	}
}

func (m *Model) activeTask() *task.Task {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	if m.rows[m.cursor].Kind != grouping.RowTask {
		return nil
	}
	return m.rows[m.cursor].Task
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case watchStartedMsg:
		if msg.err != nil {
			m.notice = msg.err.Error()
			return m, nil
		}
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		return m, m.waitForWatch()
	case watchEventMsg:
		// Another process changed the store; re-derive the board.
		m.refresh()
		return m, m.waitForWatch()
	case watchStoppedMsg:
		m.stopWatch()
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.stopWatch()
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			m.moveCursor(-1)
		case key.Matches(msg, keys.Down):
			m.moveCursor(1)
		case key.Matches(msg, keys.MoveUp):
			m.moveTask(-1)
		case key.Matches(msg, keys.MoveDown):
			m.moveTask(1)
		case key.Matches(msg, keys.Complete):
			m.completeActive()
		case key.Matches(msg, keys.Refresh):
			m.notice = ""
			m.refresh()
		}
	}
	return m, nil
}

func (m *Model) moveCursor(direction int) {
	m.notice = ""
	next := m.cursor + direction
	for next >= 0 && next < len(m.rows) {
		if m.rows[next].Kind == grouping.RowTask {
			m.cursor = next
			return
		}
		next += direction
	}
}

// moveTask plans and applies a keyboard move of the active task past the
// adjacent task row. On acceptance the cursor follows the task; on
// rejection nothing changes and the reason is surfaced.
func (m *Model) moveTask(direction int) {
	active := m.activeTask()
	if active == nil {
		return
	}
	target, ok := reorder.NextTaskRow(m.rows, m.cursor, direction)
	if !ok {
		return
	}

	req := reorder.Request{
		ActiveID: active.ID,
		TargetID: target.Task.ID,
		Mode:     m.State.Mode,
	}
	result, err := m.Service.Move(context.Background(), req, time.Now())
	if err != nil {
		m.notice = err.Error()
		return
	}
	if !result.Accepted {
		m.notice = string(result.Reason)
		return
	}
	m.notice = ""
	m.refresh()
	// Follow the task to its new row.
	for i, row := range m.rows {
		if row.Kind == grouping.RowTask && row.Task.ID == active.ID {
			m.cursor = i
			return
		}
	}
}

func (m *Model) completeActive() {
	active := m.activeTask()
	if active == nil {
		return
	}
	if _, err := m.Service.Complete(context.Background(), active.ID); err != nil {
		m.notice = err.Error()
		return
	}
	m.refresh()
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("agenda"))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(faintStyle.Render(" no tasks"))
		b.WriteString("\n")
	}

	for i, row := range m.rows {
		switch row.Kind {
		case grouping.RowHeader:
			label := row.Key.Label
			if s := row.Summary; s != nil {
				label = fmt.Sprintf("%s (%d)", label, s.Count)
				if s.RemainingMinutes > 0 {
					label = fmt.Sprintf("%s %s", label, faintStyle.Render(fmt.Sprintf("%dm planned", s.RemainingMinutes)))
				}
			}
			b.WriteString(headerStyle.Render(label))
			b.WriteString("\n")
		case grouping.RowSubheader:
			b.WriteString(subheaderStyle.Render(fmt.Sprintf("  %s", row.Period.String())))
			b.WriteString(faintStyle.Render(fmt.Sprintf(" %dm free", row.RemainingBudget)))
			b.WriteString("\n")
		case grouping.RowTask:
			line := fmt.Sprintf("    %s %s", statusGlyph(row.Task.Status), row.Task.Title)
			if row.Task.HasEstimate() {
				line += faintStyle.Render(fmt.Sprintf(" %dm", row.Task.Estimate))
			}
			if i == m.cursor {
				line = cursorStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(faintStyle.Render("↑/↓ navigate · shift+↑/↓ move · x complete · r refresh · q quit"))
	b.WriteString("\n")
	return b.String()
}

func statusGlyph(s task.Status) string {
	switch s {
	case task.StatusDone:
		return "✘"
	case task.StatusInProgress:
		return "◐"
	case task.StatusBlocked:
		return "⊘"
	default:
		return "●"
	}
}
