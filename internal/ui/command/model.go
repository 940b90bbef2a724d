// Package command is the ":" palette for jumping to a screen or running a
// session action by name.
package command

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskshop/internal/route"
	"github.com/nhle/taskshop/internal/theme"
)

// CommandMsg carries the text the user ran.
type CommandMsg string

// Names accepted besides screen paths.
const (
	Logout   = "logout"
	Quit     = "quit"
	Help     = "help"
	Checkout = "checkout"
)

const historySize = 20

// Suggestions completes paths and command names as the user types.
var Suggestions = []string{
	route.Home, route.Login, route.Register, route.Tasks,
	route.Products, route.Cart,
	Logout, Quit, Help, Checkout,
}

// Command is a parsed palette entry: either a screen path or a name.
type Command struct {
	Name string
	Path string
}

// Parse splits input into a Command. "q" is shorthand for quit.
func Parse(input string) Command {
	s := strings.TrimSpace(input)
	if strings.HasPrefix(s, "/") {
		return Command{Path: s}
	}
	s = strings.ToLower(s)
	if s == "q" {
		s = Quit
	}
	return Command{Name: s}
}

// Model is the palette: a single input with recall of earlier entries.
type Model struct {
	input   textinput.Model
	history []string
	recall  int
	width   int
}

// New returns a focused palette.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "/cart, /products/3, logout, quit"
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(Suggestions)
	ti.Focus()

	m := Model{input: ti}
	m.SetSize(width, height)
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update runs the entry on enter; up and down walk the history.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if text == "" {
				return m, nil
			}
			m.remember(text)
			return m, func() tea.Msg { return CommandMsg(text) }
		case tea.KeyUp:
			m.step(-1)
			return m, nil
		case tea.KeyDown:
			m.step(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) remember(text string) {
	if n := len(m.history); n == 0 || m.history[n-1] != text {
		m.history = append(m.history, text)
	}
	if len(m.history) > historySize {
		m.history = m.history[len(m.history)-historySize:]
	}
	m.recall = len(m.history)
}

func (m *Model) step(delta int) {
	if len(m.history) == 0 {
		return
	}
	m.recall = max(0, min(len(m.history), m.recall+delta))
	if m.recall == len(m.history) {
		m.input.Reset()
		return
	}
	m.input.SetValue(m.history[m.recall])
	m.input.CursorEnd()
}

// History returns past entries, oldest first.
func (m Model) History() []string {
	return append([]string(nil), m.history...)
}

func (m Model) View() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		theme.TitleStyle.Render("Go to"),
		m.input.View(),
		theme.MutedStyle.Render("tab completes · ↑/↓ history · esc closes"),
	)
	return theme.PanelStyle.Width(m.width - 4).Render(body)
}

// SetSize resizes the palette.
func (m *Model) SetSize(width, _ int) {
	m.width = width
	m.input.Width = max(10, width-6)
}

// Focus gives keyboard focus to the input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
