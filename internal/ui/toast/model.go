package toast

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/taskshop/internal/theme"
)

// Kinds of notification.
const (
	KindInfo    = "info"
	KindSuccess = "success"
	KindError   = "error"
)

// Duration is how long a toast stays on screen.
var Duration = 3 * time.Second

// ShowMsg asks the root model to display a toast.
type ShowMsg struct {
	Text string
	Kind string
}

// ExpiredMsg hides the toast with the matching sequence number.
type ExpiredMsg struct {
	seq int
}

// Model displays a single transient notification. A newer toast replaces
// the current one.
type Model struct {
	text string
	kind string
	seq  int
}

// New creates an empty toast model.
func New() Model {
	return Model{}
}

// Show returns a command that emits a ShowMsg.
func Show(text, kind string) tea.Cmd {
	return func() tea.Msg {
		return ShowMsg{Text: text, Kind: kind}
	}
}

// Success is Show with KindSuccess.
func Success(text string) tea.Cmd { return Show(text, KindSuccess) }

// Error is Show with KindError.
func Error(text string) tea.Cmd { return Show(text, KindError) }

// Update handles ShowMsg and expiry.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ShowMsg:
		m.seq++
		m.text = msg.Text
		m.kind = msg.Kind
		seq := m.seq
		return m, tea.Tick(Duration, func(time.Time) tea.Msg {
			return ExpiredMsg{seq: seq}
		})

	case ExpiredMsg:
		if msg.seq == m.seq {
			m.text = ""
		}
	}
	return m, nil
}

// Visible reports whether a toast is showing.
func (m Model) Visible() bool {
	return m.text != ""
}

// Text returns the current message.
func (m Model) Text() string {
	return m.text
}

// View renders the toast, or "" when hidden.
func (m Model) View() string {
	if m.text == "" {
		return ""
	}
	return theme.ToastStyle(m.kind).Render(m.text)
}
