package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nhle/taskshop/internal/logging"
	"github.com/nhle/taskshop/internal/model"
	"github.com/nhle/taskshop/internal/validation"
)

// StorageKey is the key-value entry holding the task snapshot.
const StorageKey = "tasks"

// KV is the durable key-value store the ledger persists into.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
}

// Ledger is the ordered task list. Every mutation rewrites the full
// snapshot under StorageKey. Safe for concurrent use.
type Ledger struct {
	mu     sync.RWMutex
	tasks  []model.Task
	kv     KV
	logger logrus.FieldLogger
	newID  func() (string, error)
}

// NewLedger returns an empty ledger persisting into kv. Call Load to
// hydrate it.
func NewLedger(kv KV, logger logrus.FieldLogger) *Ledger {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Ledger{
		kv:     kv,
		logger: logger.WithField("component", "tasks"),
		newID:  newTaskID,
	}
}

// newTaskID derives an id from the creation time. UUIDv7 carries a
// millisecond timestamp and stays unique within the same millisecond.
func newTaskID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Load replaces the in-memory list with the persisted snapshot. A missing
// or unreadable snapshot yields an empty list and is not reported.
func (l *Ledger) Load(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.tasks = nil
	raw, err := l.kv.Get(ctx, StorageKey)
	if err != nil {
		l.logger.WithError(err).Debug("no task snapshot loaded")
		return
	}

	var loaded []model.Task
	if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
		l.logger.WithError(err).Debug("discarding unreadable task snapshot")
		return
	}
	l.tasks = loaded
}

// persist writes the current list. Callers hold mu.
func (l *Ledger) persist(ctx context.Context) error {
	list := l.tasks
	if list == nil {
		list = []model.Task{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encoding tasks: %w", err)
	}
	if err := l.kv.Put(ctx, StorageKey, string(raw)); err != nil {
		l.logger.WithError(err).WithField("tasks", len(list)).Warn("task snapshot not saved")
		return fmt.Errorf("saving tasks: %w", err)
	}
	return nil
}

// Add appends a new active task. A blank title returns
// validation.ErrEmptyTitle and leaves the list unchanged. A storage failure
// keeps the task in memory and returns the error.
func (l *Ledger) Add(ctx context.Context, title string) (model.Task, error) {
	title, err := validation.TaskTitle(title)
	if err != nil {
		return model.Task{}, err
	}

	id, err := l.newID()
	if err != nil {
		return model.Task{}, fmt.Errorf("generating task id: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	t := model.Task{ID: id, Title: title}
	l.tasks = append(l.tasks, t)
	return t, l.persist(ctx)
}

// Toggle flips the completed flag of task id. Unknown ids are ignored.
func (l *Ledger) Toggle(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.tasks {
		if l.tasks[i].ID == id {
			l.tasks[i].Completed = !l.tasks[i].Completed
			return l.persist(ctx)
		}
	}
	return nil
}

// Delete removes task id. Unknown ids are ignored.
func (l *Ledger) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.tasks {
		if l.tasks[i].ID == id {
			l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
			return l.persist(ctx)
		}
	}
	return nil
}

// ClearCompleted removes every completed task and returns how many went.
func (l *Ledger) ClearCompleted(ctx context.Context) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := make([]model.Task, 0, len(l.tasks))
	for _, t := range l.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(l.tasks) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	l.tasks = kept
	return removed, l.persist(ctx)
}

// All returns a copy of the list in insertion order.
func (l *Ledger) All() []model.Task {
	return l.Filter(model.TaskViewAll)
}

// Get returns task id.
func (l *Ledger) Get(id string) (model.Task, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, t := range l.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// Filter returns the tasks visible in view, in insertion order. Unknown
// views behave like "all".
func (l *Ledger) Filter(view model.TaskView) []model.Task {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.Task, 0, len(l.tasks))
	for _, t := range l.tasks {
		switch view {
		case model.TaskViewActive:
			if t.Completed {
				continue
			}
		case model.TaskViewCompleted:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// Stats counts tasks per view.
func (l *Ledger) Stats() model.TaskStats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s := model.TaskStats{Total: len(l.tasks)}
	for _, t := range l.tasks {
		if t.Completed {
			s.Completed++
		}
	}
	s.Active = s.Total - s.Completed
	return s
}

// ParseView maps a filter name to a TaskView.
func ParseView(name string) (model.TaskView, error) {
	for _, v := range model.TaskViews {
		if string(v) == name {
			return v, nil
		}
	}
	return model.TaskViewAll, fmt.Errorf("unknown filter %q (want all, active or completed)", name)
}
