package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdate_EnterEmitsTrimmedCommand(t *testing.T) {
	m := New(80, 24)
	m.input.SetValue("  /cart ")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, CommandMsg("/cart"), cmd())
	assert.Empty(t, m.input.Value())
}

func TestUpdate_EmptyInputDoesNothing(t *testing.T) {
	m := New(80, 24)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestParse(t *testing.T) {
	assert.Equal(t, Command{Path: "/products/3"}, Parse(" /products/3 "))
	assert.Equal(t, Command{Name: Logout}, Parse("LOGOUT"))
	assert.Equal(t, Command{Name: Quit}, Parse("q"))
	assert.Equal(t, Command{Name: "dance"}, Parse("dance"))
}

func TestUpdate_HistoryRecall(t *testing.T) {
	m := New(80, 24)
	for _, entry := range []string{"/cart", "/tasks", "/tasks"} {
		m.input.SetValue(entry)
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	}
	assert.Equal(t, []string{"/cart", "/tasks"}, m.History())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "/tasks", m.input.Value())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "/cart", m.input.Value())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "/cart", m.input.Value())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Empty(t, m.input.Value())
}
