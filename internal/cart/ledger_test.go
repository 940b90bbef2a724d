package cart

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/taskshop/internal/model"
)

var (
	headphone = model.Product{ID: "1", Name: "Headphone Premium", Price: 2_999_900}
	mouse     = model.Product{ID: "5", Name: "Mouse Gaming", Price: 799_900}
)

func TestLedger_AddAggregatesByProduct(t *testing.T) {
	l := NewLedger()
	l.Add(headphone)
	l.Add(headphone)

	lines := l.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)

	l.Add(headphone)
	line, ok := l.Line("1")
	require.True(t, ok)
	assert.Equal(t, 3, line.Quantity)
}

func TestLedger_LinesKeepInsertionOrder(t *testing.T) {
	l := NewLedger()
	l.Add(mouse)
	l.Add(headphone)
	l.Add(mouse)

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "5", lines[0].Product.ID)
	assert.Equal(t, "1", lines[1].Product.ID)
	assert.Equal(t, 2, l.Count())
	assert.Equal(t, 3, l.TotalQuantity())
}

func TestLedger_UpdateQuantityFloorsAtOne(t *testing.T) {
	l := NewLedger()
	l.Add(mouse)
	l.UpdateQuantity("5", 2)

	line, _ := l.Line("5")
	assert.Equal(t, 3, line.Quantity)

	for range 5 {
		l.UpdateQuantity("5", -1)
	}
	line, ok := l.Line("5")
	require.True(t, ok)
	assert.Equal(t, 1, line.Quantity)

	l.UpdateQuantity("5", -10)
	line, _ = l.Line("5")
	assert.Equal(t, 1, line.Quantity)
}

func TestLedger_UpdateQuantityUnknownIsNoop(t *testing.T) {
	l := NewLedger()
	l.Add(mouse)
	l.UpdateQuantity("404", 3)
	assert.Equal(t, 1, l.TotalQuantity())
}

func TestLedger_Remove(t *testing.T) {
	l := NewLedger()
	l.Add(mouse)
	l.Add(headphone)

	l.Remove("5")
	l.Remove("404")

	lines := l.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "1", lines[0].Product.ID)
}

func TestLedger_Subtotal(t *testing.T) {
	l := NewLedger()
	a := model.Product{ID: "a", Price: 100}
	b := model.Product{ID: "b", Price: 50}
	l.Add(a)
	l.Add(a)
	for range 3 {
		l.Add(b)
	}
	assert.Equal(t, int64(350), l.Subtotal())

	assert.Equal(t, int64(0), NewLedger().Subtotal())
}

func TestLedger_LinesReturnsCopy(t *testing.T) {
	l := NewLedger()
	l.Add(mouse)
	lines := l.Lines()
	lines[0].Quantity = 99

	line, _ := l.Line("5")
	assert.Equal(t, 1, line.Quantity)
}

func TestLedger_Clear(t *testing.T) {
	l := NewLedger()
	l.Add(mouse)
	require.False(t, l.Empty())

	l.Clear()
	assert.True(t, l.Empty())
	assert.Empty(t, l.Lines())
}

func TestLedger_ConcurrentAdds(t *testing.T) {
	l := NewLedger()
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Add(mouse)
		}()
	}
	wg.Wait()

	line, ok := l.Line("5")
	require.True(t, ok)
	assert.Equal(t, 50, line.Quantity)
}
