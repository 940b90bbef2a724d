package tasklist

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/nhle/taskshop/internal/model"
	"github.com/nhle/taskshop/internal/theme"
)

// TaskItem adapts a task to bubbles/list.
type TaskItem struct {
	Task model.Task
}

func (i TaskItem) FilterValue() string { return i.Task.Title }

func (i TaskItem) Title() string { return i.Task.Title }

func (i TaskItem) Description() string {
	if i.Task.Completed {
		return "completed"
	}
	return "active"
}

// Created recovers the creation time from a version 7 id.
func (i TaskItem) Created() (time.Time, bool) {
	id, err := uuid.Parse(i.Task.ID)
	if err != nil || id.Version() != 7 {
		return time.Time{}, false
	}
	sec, nsec := id.Time().UnixTime()
	return time.Unix(sec, nsec), true
}

// ItemDelegate draws one task per line: checkbox, title, and age on the
// right edge.
type ItemDelegate struct {
	now func() time.Time
}

func (d ItemDelegate) Height() int                         { return 1 }
func (d ItemDelegate) Spacing() int                        { return 0 }
func (d ItemDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}

	check := "[ ]"
	if ti.Task.Completed {
		check = "[x]"
	}
	line := fmt.Sprintf("%s %s", check, theme.TaskStyle(ti.Task.Completed).Render(ti.Task.Title))

	style := theme.ListItemStyle
	if index == m.Index() {
		style = theme.SelectedItemStyle
	}
	line = style.Render(line)

	if created, ok := ti.Created(); ok {
		now := time.Now
		if d.now != nil {
			now = d.now
		}
		age := theme.MutedStyle.Render(humanize.RelTime(created, now(), "ago", "from now"))
		if gap := m.Width() - lipgloss.Width(line) - lipgloss.Width(age); gap > 1 {
			line = lipgloss.JoinHorizontal(lipgloss.Top, line, lipgloss.NewStyle().Width(gap).Render(""), age)
		}
	}

	fmt.Fprint(w, line)
}
