package auth

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/nhle/taskshop/internal/logging"
	"github.com/nhle/taskshop/internal/model"
	"github.com/nhle/taskshop/internal/route"
)

// State is the guard's view of the session.
type State int

const (
	// StateUnknown holds until the provider's first notification.
	StateUnknown State = iota
	StateSignedOut
	StateSignedIn
)

func (s State) String() string {
	switch s {
	case StateSignedOut:
		return "signed out"
	case StateSignedIn:
		return "signed in"
	default:
		return "unknown"
	}
}

// Change is delivered on Guard.Changes after every session transition.
type Change struct {
	State     State
	Principal *model.Principal
}

// Guard mirrors the provider's session and decides what protected screens
// may render.
type Guard struct {
	provider Provider
	logger   logrus.FieldLogger

	mu        sync.RWMutex
	state     State
	principal *model.Principal

	changes chan Change
	busy    atomic.Bool
	stop    func()
	once    sync.Once
}

// NewGuard returns a guard over provider. Call Start to begin tracking.
func NewGuard(provider Provider, logger logrus.FieldLogger) *Guard {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Guard{
		provider: provider,
		logger:   logger.WithField("component", "auth"),
		changes:  make(chan Change, 1),
	}
}

// Start subscribes to the provider and restores any persisted session. A
// failed restore is logged and treated as signed out.
func (g *Guard) Start(ctx context.Context) {
	stop := g.provider.Watch(g.observe)
	g.mu.Lock()
	g.stop = stop
	g.mu.Unlock()

	if err := g.provider.Restore(ctx); err != nil {
		g.logger.WithError(err).Warn("session restore failed")
		if !g.Ready() {
			g.observe(nil)
		}
	}
}

func (g *Guard) observe(p *model.Principal) {
	c := Change{State: StateSignedOut, Principal: p}
	if p != nil {
		c.State = StateSignedIn
	}

	g.mu.Lock()
	prev := g.state
	g.state = c.State
	g.principal = p
	g.mu.Unlock()

	entry := g.logger.WithField("state", c.State.String())
	if p != nil {
		entry = entry.WithField("uid", p.UID)
	}
	if prev != c.State {
		entry.Info("session changed")
	}

	g.publish(c)
}

// publish keeps only the newest undelivered change.
func (g *Guard) publish(c Change) {
	g.mu.Lock()
	defer g.mu.Unlock()

	select {
	case g.changes <- c:
		return
	default:
	}
	select {
	case <-g.changes:
	default:
	}
	select {
	case g.changes <- c:
	default:
	}
}

// Changes delivers session transitions. Only the newest pending change is
// buffered.
func (g *Guard) Changes() <-chan Change {
	return g.changes
}

// Ready reports whether the provider has reported a session state yet.
func (g *Guard) Ready() bool {
	return g.State() != StateUnknown
}

// State returns the current session state.
func (g *Guard) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// SignedIn reports whether a principal is present.
func (g *Guard) SignedIn() bool {
	return g.State() == StateSignedIn
}

// Principal returns the signed-in identity, or nil.
func (g *Guard) Principal() *model.Principal {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return clonePrincipal(g.principal)
}

// Resolve maps a requested path to the screen to show. While the state is
// unknown nothing may render, so ok is false.
func (g *Guard) Resolve(path string) (r route.Route, ok bool) {
	if !g.Ready() {
		return route.Route{}, false
	}
	return route.Resolve(path, g.SignedIn()), true
}

// Busy reports whether a request is in flight.
func (g *Guard) Busy() bool {
	return g.busy.Load()
}

func (g *Guard) exclusive(fn func() error) error {
	if !g.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer g.busy.Store(false)
	return fn()
}

// Login signs in. Failures leave the session unchanged.
func (g *Guard) Login(ctx context.Context, email, password string) error {
	return g.exclusive(func() error {
		return g.provider.Login(ctx, email, password)
	})
}

// Signup creates an account and signs it in.
func (g *Guard) Signup(ctx context.Context, email, password, displayName string) error {
	return g.exclusive(func() error {
		return g.provider.Signup(ctx, email, password, displayName)
	})
}

// Logout ends the session.
func (g *Guard) Logout(ctx context.Context) error {
	return g.exclusive(func() error {
		return g.provider.Logout(ctx)
	})
}

// Close unsubscribes from the provider.
func (g *Guard) Close() {
	g.once.Do(func() {
		g.mu.RLock()
		stop := g.stop
		g.mu.RUnlock()
		if stop != nil {
			stop()
		}
	})
}
