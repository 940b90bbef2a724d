// Package help renders the key reference and the screen directory.
package help

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nhle/taskshop/internal/keys"
	"github.com/nhle/taskshop/internal/route"
	"github.com/nhle/taskshop/internal/theme"
)

type screen struct {
	path, about string
}

var screens = []screen{
	{route.Home, "dashboard"},
	{route.Login, "sign in"},
	{route.Register, "create account"},
	{route.Tasks, "tasks"},
	{route.Products, "products"},
	{route.Product("<id>"), "product detail"},
	{route.Cart, "cart"},
}

// Model is the help overlay.
type Model struct {
	keys     *keys.KeyMap
	help     help.Model
	signedIn bool
	width    int
	height   int
}

// New returns the overlay for k.
func New(k *keys.KeyMap, width, height int) Model {
	m := Model{keys: k, help: help.New()}
	m.help.ShowAll = true
	m.SetSize(width, height)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(tea.Msg) (Model, tea.Cmd) { return m, nil }

// SetSignedIn marks protected screens as reachable or not.
func (m *Model) SetSignedIn(v bool) {
	m.signedIn = v
}

// Directory renders the screen table.
func (m Model) Directory() string {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("PATH", "SCREEN", "")
	for _, s := range screens {
		note := ""
		if route.Parse(s.path).Protected() && !m.signedIn {
			note = "sign in first"
		}
		t.Row(s.path, s.about, note)
	}
	return t.Render()
}

func (m Model) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		theme.TitleStyle.Render("Keyboard Shortcuts"),
		m.help.View(m.keys),
		"",
		theme.TitleStyle.Render("Screens (open with :<path>)"),
		theme.MutedStyle.Render(m.Directory()),
	)
	return theme.PanelStyle.
		Width(m.width - 4).
		Height(max(m.height-4, 1)).
		Render(content)
}

// SetSize resizes the overlay.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
