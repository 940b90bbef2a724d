package productdetail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskshop/internal/cart"
	"github.com/nhle/taskshop/internal/catalog"
	"github.com/nhle/taskshop/internal/keys"
	"github.com/nhle/taskshop/internal/model"
	"github.com/nhle/taskshop/internal/money"
	"github.com/nhle/taskshop/internal/route"
	"github.com/nhle/taskshop/internal/theme"
	"github.com/nhle/taskshop/internal/ui"
	"github.com/nhle/taskshop/internal/ui/toast"
)

// RelatedLimit caps the related products shown under a product.
const RelatedLimit = 3

// Model shows a single product.
type Model struct {
	catalog *catalog.Store
	cart    *cart.Ledger
	keys    *keys.KeyMap
	id      string
	product model.Product
	found   bool
	related []model.Product
	cursor  int
	width   int
	height  int
}

// New creates a product detail model. Call SetProduct before showing it.
func New(c *catalog.Store, l *cart.Ledger, k *keys.KeyMap, width, height int) Model {
	return Model{
		catalog: c,
		cart:    l,
		keys:    k,
		width:   width,
		height:  height,
	}
}

// SetProduct loads product id and its related products.
func (m *Model) SetProduct(id string) {
	m.id = id
	m.product, m.found = m.catalog.Get(id)
	m.related = nil
	m.cursor = 0
	if m.found {
		m.related = m.catalog.Related(id, RelatedLimit)
	}
}

// Found reports whether the requested product exists.
func (m Model) Found() bool {
	return m.found
}

// Product returns the displayed product.
func (m Model) Product() model.Product {
	return m.product
}

// Related returns the related products.
func (m Model) Related() []model.Product {
	return m.related
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Back):
		return m, ui.Navigate(route.Products)

	case !m.found:
		return m, nil

	case key.Matches(keyMsg, m.keys.AddToCart):
		m.cart.Add(m.product)
		return m, toast.Success(fmt.Sprintf("%s added to cart", m.product.Name))

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.related)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Select):
		if m.cursor < len(m.related) {
			return m, ui.Navigate(route.Product(m.related[m.cursor].ID))
		}
	}
	return m, nil
}

// View renders the product.
func (m Model) View() string {
	if !m.found {
		content := lipgloss.JoinVertical(lipgloss.Left,
			theme.TitleStyle.Render("Product not found"),
			theme.MutedStyle.Render(fmt.Sprintf("There is no product with id %q.", m.id)),
			"",
			theme.HelpStyle.Render("esc back to products"),
		)
		return lipgloss.NewStyle().Padding(1, 2).Render(content)
	}

	p := m.product
	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render(p.Name))
	b.WriteString("\n")
	b.WriteString(theme.CategoryStyle.Render(p.Category))
	b.WriteString("\n\n")
	b.WriteString(theme.PriceStyle.Render(money.Rupiah(p.Price)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(max(m.width-8, 20)).Render(p.Description))
	b.WriteString("\n")
	if p.Image != "" {
		b.WriteString(theme.MutedStyle.Render(p.Image))
		b.WriteString("\n")
	}

	if line, ok := m.cart.Line(p.ID); ok {
		fmt.Fprintf(&b, "\n%s\n", theme.MutedStyle.Render(fmt.Sprintf("%d in cart", line.Quantity)))
	}

	if len(m.related) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Bold(true).Render("Related products"))
		b.WriteString("\n")
		for i, r := range m.related {
			line := fmt.Sprintf("%s  %s", r.Name, theme.PriceStyle.Render(money.Rupiah(r.Price)))
			if i == m.cursor {
				line = theme.SelectedItemStyle.Render(line)
			} else {
				line = theme.ListItemStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("a add to cart · enter open related · esc back"))

	return theme.PanelStyle.Width(max(m.width-4, 20)).Render(b.String())
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
