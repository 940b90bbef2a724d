package tasks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/taskshop/internal/model"
	"github.com/nhle/taskshop/internal/store"
	"github.com/nhle/taskshop/internal/validation"
	"github.com/nhle/taskshop/tests/testutil"
)

// memKV implements KV for testing
type memKV struct {
	data   map[string]string
	PutErr error
	Puts   int
}

func newMemKV() *memKV {
	return &memKV{data: map[string]string{}}
}

func (m *memKV) Get(_ context.Context, key string) (string, error) {
	v, ok := m.data[key]
	if !ok {
		return "", store.ErrNotFound
	}
	return v, nil
}

func (m *memKV) Put(_ context.Context, key, value string) error {
	if m.PutErr != nil {
		return m.PutErr
	}
	m.Puts++
	m.data[key] = value
	return nil
}

func TestLedger_AddPersistsAndRehydrates(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()

	l := NewLedger(kv, nil)
	l.Load(ctx)
	added, err := l.Add(ctx, "Buy milk")
	require.NoError(t, err)
	assert.False(t, added.Completed)

	fresh := NewLedger(kv, nil)
	fresh.Load(ctx)
	all := fresh.All()
	require.Len(t, all, 1)
	assert.Equal(t, "Buy milk", all[0].Title)
	assert.False(t, all[0].Completed)
	assert.Equal(t, added.ID, all[0].ID)
}

func TestLedger_SnapshotFormat(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	l := NewLedger(kv, nil)
	l.newID = func() (string, error) { return "42", nil }

	_, err := l.Add(ctx, "Write report")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"42","title":"Write report","completed":false}]`, kv.data[StorageKey])
}

func TestLedger_BlankTitleRejected(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	l := NewLedger(kv, nil)

	for _, title := range []string{"", "   "} {
		_, err := l.Add(ctx, title)
		assert.ErrorIs(t, err, validation.ErrEmptyTitle)
	}
	assert.Empty(t, l.All())
	assert.Zero(t, kv.Puts)
}

func TestLedger_AddTrimsTitle(t *testing.T) {
	l := NewLedger(newMemKV(), nil)
	task, err := l.Add(context.Background(), "  Call mom  ")
	require.NoError(t, err)
	assert.Equal(t, "Call mom", task.Title)
}

func TestLedger_IDsAreUnique(t *testing.T) {
	l := NewLedger(newMemKV(), nil)
	seen := map[string]bool{}
	for range 100 {
		task, err := l.Add(context.Background(), "x")
		require.NoError(t, err)
		require.False(t, seen[task.ID])
		seen[task.ID] = true
	}
}

func TestLedger_ToggleMovesBetweenViews(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(newMemKV(), nil)
	task, err := l.Add(ctx, "Read book")
	require.NoError(t, err)

	require.Len(t, l.Filter(model.TaskViewActive), 1)
	require.Empty(t, l.Filter(model.TaskViewCompleted))

	require.NoError(t, l.Toggle(ctx, task.ID))
	assert.Empty(t, l.Filter(model.TaskViewActive))
	completed := l.Filter(model.TaskViewCompleted)
	require.Len(t, completed, 1)
	assert.Equal(t, task.ID, completed[0].ID)
	assert.Equal(t, "Read book", completed[0].Title)
	assert.Len(t, l.Filter(model.TaskViewAll), 1)

	require.NoError(t, l.Toggle(ctx, task.ID))
	assert.Len(t, l.Filter(model.TaskViewActive), 1)

	require.NoError(t, l.Toggle(ctx, "missing"))
}

func TestLedger_DeleteAndClearCompleted(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(newMemKV(), nil)
	a, _ := l.Add(ctx, "a")
	b, _ := l.Add(ctx, "b")
	c, _ := l.Add(ctx, "c")

	require.NoError(t, l.Toggle(ctx, a.ID))
	require.NoError(t, l.Toggle(ctx, c.ID))
	assert.Equal(t, model.TaskStats{Total: 3, Active: 1, Completed: 2}, l.Stats())

	removed, err := l.ClearCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	all := l.All()
	require.Len(t, all, 1)
	assert.Equal(t, b.ID, all[0].ID)

	removed, err = l.ClearCompleted(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)

	require.NoError(t, l.Delete(ctx, "missing"))
	require.NoError(t, l.Delete(ctx, b.ID))
	assert.Empty(t, l.All())
}

func TestLedger_LoadToleratesBadSnapshot(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	kv.data[StorageKey] = "{not json"

	l := NewLedger(kv, nil)
	l.Load(ctx)
	assert.Empty(t, l.All())

	_, err := l.Add(ctx, "fresh start")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(kv.data[StorageKey], "["))
}

func TestLedger_LegacyIDsStillWork(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	kv.data[StorageKey] = `[{"id":"1712345678901","title":"Old one","completed":false}]`

	l := NewLedger(kv, nil)
	l.Load(ctx)
	require.Len(t, l.All(), 1)

	require.NoError(t, l.Toggle(ctx, "1712345678901"))
	assert.True(t, l.All()[0].Completed)
	require.NoError(t, l.Delete(ctx, "1712345678901"))
	assert.Empty(t, l.All())
}

func TestLedger_WriteFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	kv.PutErr = errors.New("disk full")

	l := NewLedger(kv, nil)
	_, err := l.Add(ctx, "Buy milk")
	assert.ErrorContains(t, err, "disk full")
	assert.Len(t, l.All(), 1)
}

func TestLedger_WithSQLiteStore(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	l := NewLedger(s, nil)
	l.Load(ctx)
	_, err := l.Add(ctx, "Buy milk")
	require.NoError(t, err)

	again := NewLedger(s, nil)
	again.Load(ctx)
	require.Len(t, again.All(), 1)
}

func TestParseView(t *testing.T) {
	v, err := ParseView("completed")
	require.NoError(t, err)
	assert.Equal(t, model.TaskViewCompleted, v)

	_, err = ParseView("done")
	assert.Error(t, err)
}
