package tasklist

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskshop/internal/keys"
	"github.com/nhle/taskshop/internal/model"
	"github.com/nhle/taskshop/internal/tasks"
	"github.com/nhle/taskshop/internal/theme"
	"github.com/nhle/taskshop/internal/ui"
	"github.com/nhle/taskshop/internal/ui/toast"
	"github.com/nhle/taskshop/internal/validation"
)

// ChangedMsg is sent after a mutation has been applied (and persisted, or
// failed to persist).
type ChangedMsg struct {
	Notice string
	Err    error
}

// Model is the task list view component.
type Model struct {
	ledger     *tasks.Ledger
	list       list.Model
	keys       *keys.KeyMap
	view       int
	adding     bool
	input      textinput.Model
	inputErr   string
	confirm    *huh.Form
	confirmYes *bool
	width      int
	height     int
}

// New creates a new task list model.
func New(l *tasks.Ledger, k *keys.KeyMap, width, height int) Model {
	lm := list.New([]list.Item{}, ItemDelegate{}, width, listHeight(height))
	lm.SetShowTitle(false)
	lm.SetShowStatusBar(false)
	lm.SetShowHelp(false)
	lm.SetFilteringEnabled(false)

	in := textinput.New()
	in.Placeholder = "What needs to be done?"
	in.Prompt = "+ "
	in.CharLimit = 200
	in.Width = width - 6

	m := Model{
		ledger: l,
		list:   lm,
		keys:   k,
		input:  in,
		width:  width,
		height: height,
	}
	m.Refresh()
	return m
}

func listHeight(h int) int {
	return max(h-6, 1)
}

// Filter returns the active view.
func (m Model) Filter() model.TaskView {
	return model.TaskViews[m.view]
}

// InputFocused reports whether keystrokes go to a text field or dialog.
func (m Model) InputFocused() bool {
	return m.adding || m.confirm != nil
}

// Refresh reloads the visible rows from the ledger.
func (m *Model) Refresh() {
	ts := m.ledger.Filter(m.Filter())
	items := make([]list.Item, len(ts))
	for i, t := range ts {
		items[i] = TaskItem{Task: t}
	}
	m.list.SetItems(items)
}

// Update handles messages for the task list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ChangedMsg:
		m.Refresh()
		if msg.Err != nil {
			return m, toast.Error(fmt.Sprintf("Saved in memory only: %v", msg.Err))
		}
		if msg.Notice != "" {
			return m, toast.Success(msg.Notice)
		}
		return m, nil

	case tea.KeyMsg:
		if m.confirm != nil {
			return m.updateConfirm(msg)
		}
		if m.adding {
			return m.handleInputKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	if m.confirm != nil {
		return m.updateConfirm(msg)
	}
	if m.adding {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleInputKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := m.input.Value()
		if _, err := validation.TaskTitle(title); err != nil {
			m.inputErr = "Task title cannot be empty"
			return m, nil
		}
		m.input.Reset()
		m.inputErr = ""
		return m, m.add(title)

	case "esc":
		m.adding = false
		m.inputErr = ""
		m.input.Reset()
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NewTask):
		m.adding = true
		m.input.Reset()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.ToggleTask):
		if t, ok := m.selected(); ok {
			return m, m.toggle(t.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.DeleteTask):
		if t, ok := m.selected(); ok {
			return m, m.remove(t.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearCompleted):
		if m.ledger.Stats().Completed == 0 {
			return m, nil
		}
		return m, m.startConfirm()

	case key.Matches(msg, m.keys.NextTab):
		m.view = (m.view + 1) % len(model.TaskViews)
		m.Refresh()
		m.list.Select(0)
		return m, nil

	case key.Matches(msg, m.keys.PrevTab):
		m.view = (m.view + len(model.TaskViews) - 1) % len(model.TaskViews)
		m.Refresh()
		m.list.Select(0)
		return m, nil
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) startConfirm() tea.Cmd {
	yes := false
	m.confirmYes = &yes
	n := m.ledger.Stats().Completed
	m.confirm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %d completed task(s)?", n)).
				Affirmative("Delete").
				Negative("Cancel").
				Value(m.confirmYes),
		),
	).WithShowHelp(false).WithWidth(ui.FormWidth(m.width))
	return m.confirm.Init()
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	mdl, cmd := m.confirm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirm = f
	}

	switch m.confirm.State {
	case huh.StateCompleted:
		yes := *m.confirmYes
		m.confirm = nil
		if yes {
			return m, m.clearCompleted()
		}
		return m, nil
	case huh.StateAborted:
		m.confirm = nil
		return m, nil
	}
	return m, cmd
}

func (m Model) selected() (model.Task, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.Task{}, false
	}
	return item.Task, true
}

func (m Model) add(title string) tea.Cmd {
	l := m.ledger
	return func() tea.Msg {
		_, err := l.Add(context.Background(), title)
		if errors.Is(err, validation.ErrEmptyTitle) {
			return ChangedMsg{}
		}
		return ChangedMsg{Err: err}
	}
}

func (m Model) toggle(id string) tea.Cmd {
	l := m.ledger
	return func() tea.Msg {
		return ChangedMsg{Err: l.Toggle(context.Background(), id)}
	}
}

func (m Model) remove(id string) tea.Cmd {
	l := m.ledger
	return func() tea.Msg {
		if err := l.Delete(context.Background(), id); err != nil {
			return ChangedMsg{Err: err}
		}
		return ChangedMsg{Notice: "Task deleted"}
	}
}

func (m Model) clearCompleted() tea.Cmd {
	l := m.ledger
	return func() tea.Msg {
		n, err := l.ClearCompleted(context.Background())
		if err != nil {
			return ChangedMsg{Err: err}
		}
		return ChangedMsg{Notice: fmt.Sprintf("Cleared %d completed task(s)", n)}
	}
}

// View renders the task list view.
func (m Model) View() string {
	labels := make([]string, len(model.TaskViews))
	for i, v := range model.TaskViews {
		labels[i] = string(v)
	}
	tabs := ui.RenderTabs(labels, m.view)

	st := m.ledger.Stats()
	stats := theme.MutedStyle.Render(
		fmt.Sprintf("%d total · %d active · %d completed", st.Total, st.Active, st.Completed))

	var input string
	switch {
	case m.adding && m.inputErr != "":
		input = m.input.View() + "\n" + theme.ErrorStyle.Render(m.inputErr)
	case m.adding:
		input = m.input.View()
	default:
		input = theme.HelpStyle.Render("n new · space toggle · d delete · C clear completed · tab filter")
	}

	body := m.list.View()
	if len(m.list.Items()) == 0 {
		body = m.renderEmptyState()
	}
	if m.confirm != nil {
		body = theme.BorderStyle.Padding(0, 1).Render(m.confirm.View())
	}

	return lipgloss.NewStyle().Padding(0, 1).Render(
		lipgloss.JoinVertical(lipgloss.Left, tabs+"  "+stats, input, "", body),
	)
}

// renderEmptyState shows guidance text when no tasks match the filter.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width - 2).
		Height(listHeight(m.height)).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	switch m.Filter() {
	case model.TaskViewActive:
		return style.Render("Nothing left to do.")
	case model.TaskViewCompleted:
		return style.Render("No completed tasks yet.")
	}
	return style.Render("No tasks yet.\nPress n to add one.")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, listHeight(height))
	m.input.Width = width - 6
}
