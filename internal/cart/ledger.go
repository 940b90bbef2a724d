package cart

import (
	"sync"

	"github.com/nhle/taskshop/internal/model"
)

// Ledger holds the cart lines for the current session. Lines keep the order
// in which their products were first added. Safe for concurrent use.
type Ledger struct {
	mu    sync.RWMutex
	lines []model.CartLine
}

// NewLedger returns an empty cart.
func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) index(productID string) int {
	for i, line := range l.lines {
		if line.Product.ID == productID {
			return i
		}
	}
	return -1
}

// Add puts one unit of p in the cart, creating its line on first add.
func (l *Ledger) Add(p model.Product) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i := l.index(p.ID); i >= 0 {
		l.lines[i].Quantity++
		return
	}
	l.lines = append(l.lines, model.CartLine{Product: p, Quantity: 1})
}

// Remove deletes the line for productID. Unknown ids are ignored.
func (l *Ledger) Remove(productID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i := l.index(productID); i >= 0 {
		l.lines = append(l.lines[:i], l.lines[i+1:]...)
	}
}

// UpdateQuantity adjusts a line by delta. The result never drops below one;
// use Remove to take a product out of the cart.
func (l *Ledger) UpdateQuantity(productID string, delta int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.index(productID)
	if i < 0 {
		return
	}
	l.lines[i].Quantity = max(1, l.lines[i].Quantity+delta)

	kept := l.lines[:0]
	for _, line := range l.lines {
		if line.Quantity > 0 {
			kept = append(kept, line)
		}
	}
	l.lines = kept
}

// Lines returns a copy of the cart lines in insertion order.
func (l *Ledger) Lines() []model.CartLine {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]model.CartLine(nil), l.lines...)
}

// Line returns the line for productID.
func (l *Ledger) Line(productID string) (model.CartLine, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if i := l.index(productID); i >= 0 {
		return l.lines[i], true
	}
	return model.CartLine{}, false
}

// Subtotal is the sum of price times quantity over all lines.
func (l *Ledger) Subtotal() int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var total int64
	for _, line := range l.lines {
		total += line.LineTotal()
	}
	return total
}

// Count is the number of distinct products in the cart.
func (l *Ledger) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.lines)
}

// TotalQuantity is the number of units across all lines.
func (l *Ledger) TotalQuantity() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := 0
	for _, line := range l.lines {
		n += line.Quantity
	}
	return n
}

// Empty reports whether the cart has no lines.
func (l *Ledger) Empty() bool {
	return l.Count() == 0
}

// Clear removes every line.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = nil
}
