package tasklist

import (
	"bytes"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/taskshop/internal/model"
)

func TestTaskItem_CreatedFromV7(t *testing.T) {
	id, err := uuid.NewV7()
	require.NoError(t, err)

	created, ok := TaskItem{Task: model.Task{ID: id.String()}}.Created()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), created, time.Minute)

	_, ok = TaskItem{Task: model.Task{ID: uuid.NewString()}}.Created()
	assert.False(t, ok)
	_, ok = TaskItem{Task: model.Task{ID: "legacy"}}.Created()
	assert.False(t, ok)
}

func TestItemDelegate_Render(t *testing.T) {
	id, err := uuid.NewV7()
	require.NoError(t, err)
	item := TaskItem{Task: model.Task{ID: id.String(), Title: "Buy milk", Completed: true}}

	d := ItemDelegate{now: func() time.Time { return time.Now().Add(2 * time.Hour) }}
	lm := list.New([]list.Item{item}, d, 80, 10)

	var buf bytes.Buffer
	d.Render(&buf, lm, 0, item)
	out := buf.String()
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "2 hours ago")
}
