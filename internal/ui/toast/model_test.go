package toast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_ShowAndExpire(t *testing.T) {
	m := New()
	assert.False(t, m.Visible())

	m, cmd := m.Update(ShowMsg{Text: "Added to cart", Kind: KindSuccess})
	require.NotNil(t, cmd)
	assert.True(t, m.Visible())
	assert.Contains(t, m.View(), "Added to cart")

	m, _ = m.Update(ExpiredMsg{seq: m.seq})
	assert.False(t, m.Visible())
	assert.Empty(t, m.View())
}

func TestModel_StaleExpiryKeepsNewerToast(t *testing.T) {
	m := New()
	m, _ = m.Update(ShowMsg{Text: "first"})
	stale := m.seq
	m, _ = m.Update(ShowMsg{Text: "second"})

	m, _ = m.Update(ExpiredMsg{seq: stale})
	assert.True(t, m.Visible())
	assert.Equal(t, "second", m.Text())
}

func TestShow_EmitsShowMsg(t *testing.T) {
	msg := Error("boom")()
	assert.Equal(t, ShowMsg{Text: "boom", Kind: KindError}, msg)
}
