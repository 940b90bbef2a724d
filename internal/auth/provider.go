// Package auth tracks the signed-in principal and gates protected screens
// on it. Identity checks are delegated to a Provider.
package auth

import (
	"context"
	"sync"

	"github.com/nhle/taskshop/internal/model"
)

// Provider is an external identity capability.
type Provider interface {
	// Restore resolves the persisted session, if any, and publishes the
	// result to watchers. A nil principal means signed out.
	Restore(ctx context.Context) error
	Login(ctx context.Context, email, password string) error
	// Signup creates the account and signs it in.
	Signup(ctx context.Context, email, password, displayName string) error
	Logout(ctx context.Context) error
	// Watch calls fn with the current principal once it is known and again
	// on every change. The returned func unsubscribes.
	Watch(fn func(*model.Principal)) (stop func())
}

// Broadcaster keeps the current principal and fans changes out to
// watchers. Providers embed it.
type Broadcaster struct {
	// pub serializes deliveries so watchers see changes in order.
	pub sync.Mutex

	mu      sync.Mutex
	known   bool
	current *model.Principal
	subs    map[int]func(*model.Principal)
	next    int
}

// Watch implements Provider.Watch.
func (b *Broadcaster) Watch(fn func(*model.Principal)) func() {
	b.pub.Lock()
	defer b.pub.Unlock()

	b.mu.Lock()
	if b.subs == nil {
		b.subs = make(map[int]func(*model.Principal))
	}
	id := b.next
	b.next++
	b.subs[id] = fn
	known, current := b.known, clonePrincipal(b.current)
	b.mu.Unlock()

	if known {
		fn(current)
	}

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish records p as the current principal and notifies watchers.
func (b *Broadcaster) Publish(p *model.Principal) {
	b.pub.Lock()
	defer b.pub.Unlock()

	b.mu.Lock()
	b.known = true
	b.current = clonePrincipal(p)
	fns := make([]func(*model.Principal), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(clonePrincipal(p))
	}
}

// Current returns the last published principal and whether any has been
// published yet.
func (b *Broadcaster) Current() (*model.Principal, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return clonePrincipal(b.current), b.known
}

func clonePrincipal(p *model.Principal) *model.Principal {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
