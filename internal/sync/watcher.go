// Package sync bridges the session guard's change stream into Bubble Tea
// messages.
package sync

import (
	"context"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/taskshop/internal/auth"
)

// restoreTimeout bounds the initial session restore.
const restoreTimeout = 30 * time.Second

// SessionChangedMsg is a tea.Msg sent after every session transition.
type SessionChangedMsg struct {
	Change auth.Change
}

// Watcher starts a guard and relays its changes to the Bubble Tea runtime.
type Watcher struct {
	guard   *auth.Guard
	mu      gosync.Mutex
	running bool
}

// New creates a Watcher over g.
func New(g *auth.Guard) *Watcher {
	return &Watcher{guard: g}
}

// Start returns a tea.Cmd that restores the session in the background and
// subscribes to changes. Calling it again only resubscribes.
func (w *Watcher) Start() tea.Cmd {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return w.waitForChange()
	}
	w.running = true
	w.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), restoreTimeout)
		defer cancel()
		w.guard.Start(ctx)
	}()

	return w.waitForChange()
}

// Stop unsubscribes the guard from its provider.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	w.guard.Close()
	w.running = false
}

// waitForChange returns a tea.Cmd that blocks until the next session
// change.
func (w *Watcher) waitForChange() tea.Cmd {
	ch := w.guard.Changes()
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return SessionChangedMsg{Change: c}
	}
}

// WaitForNextChange returns a tea.Cmd that waits for the next session
// change. Call it after handling a SessionChangedMsg to keep listening.
func (w *Watcher) WaitForNextChange() tea.Cmd {
	return w.waitForChange()
}
