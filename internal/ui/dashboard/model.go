package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskshop/internal/money"
	"github.com/nhle/taskshop/internal/model"
	"github.com/nhle/taskshop/internal/theme"
)

// Summary is the data shown on the dashboard.
type Summary struct {
	Principal *model.Principal
	Tasks     model.TaskStats
	CartItems int
	CartTotal int64
}

// Model is the landing screen.
type Model struct {
	summary Summary
	width   int
	height  int
}

// New creates a dashboard model.
func New(width, height int) Model {
	return Model{width: width, height: height}
}

// SetSummary replaces the displayed data.
func (m *Model) SetSummary(s Summary) {
	m.summary = s
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(theme.TitleStyle.Render("Welcome to TaskShop"))
	b.WriteString("\n")

	p := m.summary.Principal
	if p == nil {
		b.WriteString("Manage your tasks and browse the shop from one place.\n\n")
		b.WriteString(theme.HelpStyle.Render("Type :/login to sign in or :/register to create an account."))
		return m.frame(b.String())
	}

	name := p.DisplayName
	if name == "" {
		name = p.Email
	}
	fmt.Fprintf(&b, "Signed in as %s\n\n", lipgloss.NewStyle().Bold(true).Render(name))

	st := m.summary.Tasks
	fmt.Fprintf(&b, "Tasks     %d total, %d active, %d completed\n", st.Total, st.Active, st.Completed)
	fmt.Fprintf(&b, "Cart      %d item(s), %s\n\n",
		m.summary.CartItems, theme.PriceStyle.Render(money.Rupiah(m.summary.CartTotal)))

	b.WriteString(theme.HelpStyle.Render("2 tasks  3 products  4 cart  L logout"))
	return m.frame(b.String())
}

func (m Model) frame(content string) string {
	return lipgloss.NewStyle().
		Width(m.width).
		Padding(1, 2).
		Render(content)
}
