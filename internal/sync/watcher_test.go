package sync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/taskshop/internal/auth"
	"github.com/nhle/taskshop/internal/model"
)

// stubProvider implements auth.Provider for testing
type stubProvider struct {
	auth.Broadcaster
	restored *model.Principal
}

func (s *stubProvider) Restore(context.Context) error {
	s.Publish(s.restored)
	return nil
}

func (s *stubProvider) Login(_ context.Context, email, _ string) error {
	s.Publish(&model.Principal{UID: "u1", Email: email})
	return nil
}

func (s *stubProvider) Signup(ctx context.Context, email, password, _ string) error {
	return s.Login(ctx, email, password)
}

func (s *stubProvider) Logout(context.Context) error {
	s.Publish(nil)
	return nil
}

func TestWatcher_StartDeliversRestoredSession(t *testing.T) {
	g := auth.NewGuard(&stubProvider{restored: &model.Principal{UID: "u1", Email: "ana@example.com"}}, nil)
	w := New(g)
	defer w.Stop()

	cmd := w.Start()
	require.NotNil(t, cmd)

	msg, ok := cmd().(SessionChangedMsg)
	require.True(t, ok)
	assert.Equal(t, auth.StateSignedIn, msg.Change.State)
	assert.Equal(t, "ana@example.com", msg.Change.Principal.Email)
}

func TestWatcher_WaitForNextChange(t *testing.T) {
	g := auth.NewGuard(&stubProvider{}, nil)
	w := New(g)
	defer w.Stop()

	first := w.Start()().(SessionChangedMsg)
	assert.Equal(t, auth.StateSignedOut, first.Change.State)

	require.NoError(t, g.Login(context.Background(), "ana@example.com", "pw"))
	next := w.WaitForNextChange()().(SessionChangedMsg)
	assert.Equal(t, auth.StateSignedIn, next.Change.State)
}

func TestWatcher_StartTwiceRestoresOnce(t *testing.T) {
	g := auth.NewGuard(&stubProvider{}, nil)
	w := New(g)
	defer w.Stop()

	_ = w.Start()().(SessionChangedMsg)
	cmd := w.Start()
	require.NotNil(t, cmd)

	w.mu.Lock()
	running := w.running
	w.mu.Unlock()
	assert.True(t, running)

	w.Stop()
	w.Stop()
	assert.False(t, w.running)
}
