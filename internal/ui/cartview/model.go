package cartview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskshop/internal/cart"
	"github.com/nhle/taskshop/internal/keys"
	"github.com/nhle/taskshop/internal/money"
	"github.com/nhle/taskshop/internal/model"
	"github.com/nhle/taskshop/internal/route"
	"github.com/nhle/taskshop/internal/theme"
	"github.com/nhle/taskshop/internal/ui"
	"github.com/nhle/taskshop/internal/ui/toast"
)

// Submitter places an order for the current cart.
type Submitter interface {
	Submit(ctx context.Context, email string) (cart.Result, error)
}

// CheckoutMsg carries the outcome of a checkout.
type CheckoutMsg struct {
	Result cart.Result
	Err    error
}

// Model is the cart screen.
type Model struct {
	ledger     *cart.Ledger
	pricing    cart.Pricing
	checkout   Submitter
	keys       *keys.KeyMap
	email      string
	cursor     int
	submitting bool
	width      int
	height     int
}

// New creates a cart view.
func New(l *cart.Ledger, p cart.Pricing, s Submitter, k *keys.KeyMap, width, height int) Model {
	return Model{
		ledger:   l,
		pricing:  p,
		checkout: s,
		keys:     k,
		width:    width,
		height:   height,
	}
}

// SetEmail sets the address orders are placed for.
func (m *Model) SetEmail(email string) {
	m.email = email
}

// Totals derives the order summary from the ledger.
func (m Model) Totals() model.Totals {
	return m.pricing.Totals(m.ledger.Subtotal())
}

// Update handles messages for the cart view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case CheckoutMsg:
		m.submitting = false
		switch {
		case errors.Is(msg.Err, cart.ErrEmptyCart):
			return m, toast.Error("Your cart is empty")
		case msg.Err != nil && msg.Result.Receipt.ID == "":
			return m, toast.Error(fmt.Sprintf("Checkout failed: %v", msg.Err))
		case msg.Err != nil:
			return m, toast.Error(fmt.Sprintf("Order %s placed, receipt not saved", shortID(msg.Result.Receipt.ID)))
		}
		text := fmt.Sprintf("Order %s placed", shortID(msg.Result.Receipt.ID))
		if msg.Result.ReceiptPath != "" {
			text += ", receipt at " + msg.Result.ReceiptPath
		}
		return m, toast.Success(text)

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}
	return m, nil
}

func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	lines := m.ledger.Lines()

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(lines)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Increase):
		if id, ok := m.selectedID(lines); ok {
			m.ledger.UpdateQuantity(id, 1)
		}

	case key.Matches(msg, m.keys.Decrease):
		if id, ok := m.selectedID(lines); ok {
			m.ledger.UpdateQuantity(id, -1)
		}

	case key.Matches(msg, m.keys.Remove):
		if id, ok := m.selectedID(lines); ok {
			name := lines[m.cursor].Product.Name
			m.ledger.Remove(id)
			m.clampCursor()
			return m, toast.Show(fmt.Sprintf("%s removed", name), toast.KindInfo)
		}

	case key.Matches(msg, m.keys.Checkout):
		if m.submitting || len(lines) == 0 {
			return m, nil
		}
		m.submitting = true
		s := m.checkout
		email := m.email
		return m, func() tea.Msg {
			res, err := s.Submit(context.Background(), email)
			return CheckoutMsg{Result: res, Err: err}
		}

	case key.Matches(msg, m.keys.GoProducts) && len(lines) == 0:
		return m, ui.Navigate(route.Products)
	}
	return m, nil
}

func (m Model) selectedID(lines []model.CartLine) (string, bool) {
	if m.cursor < 0 || m.cursor >= len(lines) {
		return "", false
	}
	return lines[m.cursor].Product.ID, true
}

func (m *Model) clampCursor() {
	if n := m.ledger.Count(); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

// View renders the cart.
func (m Model) View() string {
	lines := m.ledger.Lines()
	if len(lines) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			theme.TitleStyle.Render("Your cart is empty"),
			theme.HelpStyle.Render("Press 3 to browse products."),
		)
		return lipgloss.NewStyle().Padding(1, 2).Render(content)
	}

	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render(fmt.Sprintf("Cart (%d item(s))", m.ledger.TotalQuantity())))
	b.WriteString("\n")

	nameWidth := 0
	for _, l := range lines {
		nameWidth = max(nameWidth, lipgloss.Width(l.Product.Name))
	}
	for i, l := range lines {
		row := fmt.Sprintf("%-*s  %s x %-3d %s",
			nameWidth, l.Product.Name,
			money.Rupiah(l.Product.Price), l.Quantity,
			theme.PriceStyle.Render(money.Rupiah(l.LineTotal())))
		if i == m.cursor {
			row = theme.SelectedItemStyle.Render(row)
		} else {
			row = theme.ListItemStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	t := m.Totals()
	shipping := money.Rupiah(t.Shipping)
	if t.Shipping == 0 {
		shipping = "Free"
	}
	summary := fmt.Sprintf("Subtotal  %s\nShipping  %s\nTax       %s\nTotal     %s",
		money.Rupiah(t.Subtotal), shipping, money.Rupiah(t.Tax),
		theme.PriceStyle.Render(money.Rupiah(t.GrandTotal)))

	b.WriteString("\n")
	b.WriteString(theme.BorderStyle.Padding(0, 1).Render(summary))
	b.WriteString("\n")

	if m.submitting {
		b.WriteString(theme.MutedStyle.Render("Placing order..."))
	} else {
		b.WriteString(theme.HelpStyle.Render("+/- quantity · d remove · c checkout"))
	}

	return lipgloss.NewStyle().Padding(0, 1).Render(b.String())
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
