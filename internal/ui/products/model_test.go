package products

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/taskshop/internal/cart"
	"github.com/nhle/taskshop/internal/catalog"
	"github.com/nhle/taskshop/internal/keys"
	"github.com/nhle/taskshop/internal/route"
	"github.com/nhle/taskshop/internal/ui"
)

func newModel(pageSize int) (Model, *cart.Ledger) {
	l := cart.NewLedger()
	return New(catalog.NewSeededStore(), l, keys.DefaultKeyMap(), pageSize, 100, 30), l
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func names(m Model) []string {
	var out []string
	for _, p := range m.Page().Items {
		out = append(out, p.Name)
	}
	return out
}

func TestNew_FirstPageOfAllProducts(t *testing.T) {
	m, _ := newModel(6)
	assert.Len(t, m.Page().Items, 6)
	assert.Equal(t, 1, m.Page().TotalPages)
	assert.Contains(t, m.View(), "Rp 2.999.900")
}

func TestCategoryTabsFilterAndResetPage(t *testing.T) {
	m, _ := newModel(2)
	m, _ = m.Update(runeKey("l"))
	require.Equal(t, 2, m.Query().Page)

	// all -> Electronics
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "Electronics", m.Query().Category)
	assert.Equal(t, 1, m.Query().Page)
	assert.Equal(t, []string{"Headphone Premium"}, names(m))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, "all", m.Query().Category)
}

func TestSortCycles(t *testing.T) {
	m, _ := newModel(6)

	m, _ = m.Update(runeKey("s"))
	assert.Equal(t, catalog.SortPriceAsc, m.Query().Sort)
	assert.Equal(t, "Book Light", names(m)[0])

	m, _ = m.Update(runeKey("s"))
	assert.Equal(t, catalog.SortPriceDesc, m.Query().Sort)
	assert.Equal(t, "Headphone Premium", names(m)[0])
}

func TestSearchFiltersWhileTyping(t *testing.T) {
	m, _ := newModel(6)

	m, _ = m.Update(runeKey("/"))
	require.True(t, m.InputFocused())
	for _, r := range "mouse" {
		m, _ = m.Update(runeKey(string(r)))
	}
	assert.Equal(t, []string{"Mouse Gaming"}, names(m))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.InputFocused())
	assert.Equal(t, "mouse", m.Query().Search)

	m, _ = m.Update(runeKey("x"))
	assert.Empty(t, m.Query().Search)
	assert.Len(t, m.Page().Items, 6)
}

func TestNoMatchesShowsEmptyState(t *testing.T) {
	m, _ := newModel(6)
	m, _ = m.Update(runeKey("/"))
	for _, r := range "zzz" {
		m, _ = m.Update(runeKey(string(r)))
	}
	assert.Empty(t, m.Page().Items)
	assert.Contains(t, m.View(), "No products found.")
}

func TestPagingStaysInRange(t *testing.T) {
	m, _ := newModel(4)
	m, _ = m.Update(runeKey("h"))
	assert.Equal(t, 1, m.Query().Page)

	m, _ = m.Update(runeKey("l"))
	m, _ = m.Update(runeKey("l"))
	assert.Equal(t, 2, m.Query().Page)
	assert.Len(t, m.Page().Items, 2)
}

func TestSelectAndAddToCart(t *testing.T) {
	m, l := newModel(6)
	m, _ = m.Update(runeKey("j"))

	m, cmd := m.Update(runeKey("a"))
	require.NotNil(t, cmd)
	line, ok := l.Line("2")
	require.True(t, ok)
	assert.Equal(t, 1, line.Quantity)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, ui.NavigateMsg{Path: route.Product("2")}, cmd())
}
