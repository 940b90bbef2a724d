package model

// Task is a local to-do entry. The JSON shape is the persisted snapshot
// format: an array of {id, title, completed}.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// TaskView selects a derived, non-destructive subset of the task list.
type TaskView string

const (
	TaskViewAll       TaskView = "all"
	TaskViewActive    TaskView = "active"
	TaskViewCompleted TaskView = "completed"
)

// TaskViews lists the views in the order the filter tabs show them.
var TaskViews = []TaskView{TaskViewAll, TaskViewActive, TaskViewCompleted}

// TaskStats counts tasks per view.
type TaskStats struct {
	Total     int
	Active    int
	Completed int
}
