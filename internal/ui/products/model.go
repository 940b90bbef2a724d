package products

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
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

// Model is the product browser: search, category tabs, sort and pages.
type Model struct {
	catalog     *catalog.Store
	cart        *cart.Ledger
	keys        *keys.KeyMap
	query       catalog.Query
	categories  []string
	catIndex    int
	page        catalog.Page
	cursor      int
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a product browser showing pageSize products per page.
func New(c *catalog.Store, l *cart.Ledger, k *keys.KeyMap, pageSize, width, height int) Model {
	si := textinput.New()
	si.Placeholder = "search products..."
	si.Prompt = "/ "
	si.Width = width - 4

	m := Model{
		catalog:     c,
		cart:        l,
		keys:        k,
		categories:  c.Categories(),
		searchInput: si,
		width:       width,
		height:      height,
		query: catalog.Query{
			Category: model.CategoryAll,
			Page:     1,
			PageSize: pageSize,
		},
	}
	m.reload()
	return m
}

// Query returns the current view inputs.
func (m Model) Query() catalog.Query {
	return m.query
}

// Page returns the current page.
func (m Model) Page() catalog.Page {
	return m.page
}

// InputFocused reports whether keystrokes go to the search field.
func (m Model) InputFocused() bool {
	return m.searchMode
}

func (m *Model) reload() {
	m.page = catalog.View(m.catalog.List(), m.query)
	if m.cursor >= len(m.page.Items) {
		m.cursor = max(len(m.page.Items)-1, 0)
	}
}

// resetPage goes back to page 1 after any filter or sort change.
func (m *Model) resetPage() {
	m.query.Page = 1
	m.cursor = 0
	m.reload()
}

// Update handles messages for the product browser.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.searchMode {
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	if m.searchMode {
		return m.handleSearchKeys(keyMsg)
	}
	return m.handleNormalKeys(keyMsg)
}

// handleSearchKeys filters as the user types.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.searchInput.Blur()
		m.query.Search = ""
		m.resetPage()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if v := m.searchInput.Value(); v != m.query.Search {
		m.query.Search = v
		m.resetPage()
	}
	return m, cmd
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.SetValue(m.query.Search)
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.NextTab):
		m.setCategory((m.catIndex + 1) % len(m.categories))
		return m, nil

	case key.Matches(msg, m.keys.PrevTab):
		m.setCategory((m.catIndex + len(m.categories) - 1) % len(m.categories))
		return m, nil

	case key.Matches(msg, m.keys.CycleSort):
		m.query.Sort = m.query.Sort.Next()
		m.resetPage()
		return m, nil

	case key.Matches(msg, m.keys.ClearFilters):
		m.query.Search = ""
		m.query.Sort = catalog.SortNone
		m.searchInput.Reset()
		m.setCategory(0)
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		if m.query.Page < m.page.TotalPages {
			m.query.Page++
			m.cursor = 0
			m.reload()
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		if m.query.Page > 1 {
			m.query.Page--
			m.cursor = 0
			m.reload()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.page.Items)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if p, ok := m.selected(); ok {
			return m, ui.Navigate(route.Product(p.ID))
		}
		return m, nil

	case key.Matches(msg, m.keys.AddToCart):
		if p, ok := m.selected(); ok {
			m.cart.Add(p)
			return m, toast.Success(fmt.Sprintf("%s added to cart", p.Name))
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) setCategory(i int) {
	m.catIndex = i
	m.query.Category = m.categories[i]
	m.resetPage()
}

func (m Model) selected() (model.Product, bool) {
	if m.cursor < 0 || m.cursor >= len(m.page.Items) {
		return model.Product{}, false
	}
	return m.page.Items[m.cursor], true
}

// View renders the product browser.
func (m Model) View() string {
	var b strings.Builder

	labels := make([]string, len(m.categories))
	for i, c := range m.categories {
		if c == model.CategoryAll {
			labels[i] = "All"
		} else {
			labels[i] = c
		}
	}
	b.WriteString(ui.RenderTabs(labels, m.catIndex))
	b.WriteString("\n")

	search := theme.MutedStyle.Render("/ search")
	if m.searchMode || m.query.Search != "" {
		search = m.searchInput.View()
		if !m.searchMode {
			search = "/ " + m.query.Search
		}
	}
	fmt.Fprintf(&b, "%s   %s\n\n", search,
		theme.MutedStyle.Render("Sort: "+m.query.Sort.Label()))

	if len(m.page.Items) == 0 {
		b.WriteString(m.renderEmptyState())
		return lipgloss.NewStyle().Padding(0, 1).Render(b.String())
	}

	nameWidth := 0
	for _, p := range m.page.Items {
		nameWidth = max(nameWidth, lipgloss.Width(p.Name))
	}
	for i, p := range m.page.Items {
		line := fmt.Sprintf("%-*s  %s  %s",
			nameWidth, p.Name,
			theme.PriceStyle.Render(money.Rupiah(p.Price)),
			theme.CategoryStyle.Render(p.Category))
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n%s",
		theme.MutedStyle.Render(fmt.Sprintf("Page %d of %d · %d product(s)",
			m.page.Page, max(m.page.TotalPages, 1), m.page.Total)))

	return lipgloss.NewStyle().Padding(0, 1).Render(b.String())
}

func (m Model) renderEmptyState() string {
	return lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render("No products found.\nPress x to clear filters.")
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.searchInput.Width = width - 4
}
