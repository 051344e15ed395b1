package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/steps/internal/app"
	"github.com/runoshun/steps/internal/engine"
	"github.com/runoshun/steps/internal/usecase"
)

// rowKind tells which list a checklist row belongs to.
type rowKind int

const (
	rowTask rowKind = iota
	rowQuick
	rowSide
)

// row is one selectable checklist line.
// Fields are ordered to minimize memory padding.
type row struct {
	id    string
	label string
	time  string
	badge string
	kind  rowKind
	done  bool
	rest  bool
}

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies
	container *app.Container
	view      *engine.TodayView
	err       error

	rows []row

	// Components
	keys   KeyMap
	styles Styles
	help   help.Model
	input  textinput.Model

	notice string
	mode   Mode
	cursor int
	width  int
}

// New creates a new TUI Model with the given container.
func New(c *app.Container) *Model {
	ti := textinput.New()
	ti.Placeholder = "Quick task title"
	ti.CharLimit = 200

	return &Model{
		container: c,
		mode:      ModeNormal,
		keys:      DefaultKeyMap(),
		styles:    DefaultStyles(),
		help:      help.New(),
		input:     ti,
	}
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return m.loadToday()
}

// loadToday returns a command that derives today's view.
func (m *Model) loadToday() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.ShowTodayUseCase().Execute(context.Background(), usecase.ShowTodayInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTodayLoaded{View: out.View}
	}
}

// selected returns the row under the cursor.
func (m *Model) selected() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

// setView replaces the view and rebuilds the rows, keeping the cursor in range.
func (m *Model) setView(v engine.TodayView) {
	m.view = &v
	m.rows = buildRows(v)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func buildRows(v engine.TodayView) []row {
	var rows []row
	for _, t := range v.Tasks {
		rows = append(rows, row{kind: rowTask, id: t.ID, label: t.Label, time: t.Time, badge: t.Badge, done: t.Done, rest: t.IsRestDay})
	}
	if v.Access.QuickTasks {
		for _, q := range v.QuickToday {
			rows = append(rows, row{kind: rowQuick, id: q.ID, label: q.Title, done: q.Done})
		}
	}
	for _, q := range v.SideQuests {
		rows = append(rows, row{kind: rowSide, id: q.GoalID, label: q.Label, time: q.Time, done: q.Done, rest: q.IsRestDay})
	}
	return rows
}

// toggle returns a command that flips the selected row.
func (m *Model) toggle(r row) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		switch r.kind {
		case rowQuick:
			out, err := m.container.ToggleQuickTaskUseCase().Execute(ctx, usecase.QuickTaskRefInput{Ref: r.id})
			if err != nil {
				return MsgError{Err: err}
			}
			return MsgActionDone{Notice: doneNotice(out.Task.Done, out.Task.Title)}
		case rowSide:
			out, err := m.container.ToggleSideQuestUseCase().Execute(ctx, usecase.SideQuestRefInput{Ref: r.id})
			if err != nil {
				return MsgError{Err: err}
			}
			return MsgActionDone{Notice: doneNotice(out.Quest.Done, out.Quest.Label)}
		default:
			out, err := m.container.ToggleTaskUseCase().Execute(ctx, usecase.ToggleTaskInput{Ref: r.id})
			if err != nil {
				return MsgError{Err: err}
			}
			notice := doneNotice(out.Task.Done, out.Task.Label)
			if out.Task.Done && out.Summary.Done == out.Summary.Total {
				notice = "All done for today!"
			}
			return MsgActionDone{Notice: notice}
		}
	}
}

func doneNotice(done bool, label string) string {
	if done {
		return fmt.Sprintf("Checked %q", label)
	}
	return fmt.Sprintf("Unchecked %q", label)
}

// unlock returns a command that adds a random goal to today's list.
func (m *Model) unlock() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.UnlockTaskUseCase().Execute(context.Background(), usecase.UnlockTaskInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgActionDone{Notice: fmt.Sprintf("Unlocked %q", out.Task.Label)}
	}
}

// sideQuest returns a command that takes on a random side quest.
func (m *Model) sideQuest() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.AddSideQuestUseCase().Execute(context.Background(), usecase.AddSideQuestInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgActionDone{Notice: "Side quest: " + out.Quest.Label}
	}
}

// addQuick returns a command that adds a quick task for today.
func (m *Model) addQuick(title string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.AddQuickTaskUseCase().Execute(context.Background(), usecase.AddQuickTaskInput{Title: title})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgActionDone{Notice: fmt.Sprintf("Added quick task %q", out.Task.Title)}
	}
}
