package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/nhle/taskshop/internal/model"
	"github.com/nhle/taskshop/internal/tasks"
)

func tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"t"},
		Short:   "Manage the task list",
		Long: `Manage the task list without opening the UI.

Examples:
  taskshop tasks add "Buy milk"
  taskshop tasks list --filter active
  taskshop tasks toggle 9c1e2f3a    # id as shown by list
  taskshop tasks clear-completed --yes`,
	}

	cmd.AddCommand(
		tasksListCmd(),
		tasksAddCmd(),
		tasksToggleCmd(),
		tasksRemoveCmd(),
		tasksClearCmd(),
	)
	return cmd
}

// withTasks opens the store, hydrates the ledger and runs fn.
func withTasks(fn func(ctx context.Context, l *tasks.Ledger) error) error {
	e, err := setup(configPath)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := context.Background()
	e.tasks.Load(ctx)
	return fn(ctx, e.tasks)
}

// resolveTaskID matches arg against full ids first, then against unique
// prefixes or suffixes (list prints the last eight characters).
func resolveTaskID(l *tasks.Ledger, arg string) (string, error) {
	if _, ok := l.Get(arg); ok {
		return arg, nil
	}
	var matches []string
	for _, t := range l.All() {
		if strings.HasPrefix(t.ID, arg) || strings.HasSuffix(t.ID, arg) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no task with id %q", arg)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id %q matches %d tasks", arg, len(matches))
	}
}

func tasksListCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := tasks.ParseView(filter)
			if err != nil {
				return err
			}
			return withTasks(func(_ context.Context, l *tasks.Ledger) error {
				out := cmd.OutOrStdout()
				list := l.Filter(view)
				if len(list) == 0 {
					fmt.Fprintln(out, "No tasks.")
					return nil
				}

				t := table.New().Headers("ID", "DONE", "TITLE")
				for _, task := range list {
					t.Row(shortTaskID(task.ID), doneMark(task), task.Title)
				}
				fmt.Fprintln(out, t.Render())

				st := l.Stats()
				fmt.Fprintf(out, "%d total, %d active, %d completed\n", st.Total, st.Active, st.Completed)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", string(model.TaskViewAll), "Filter: all, active or completed")
	return cmd
}

func tasksAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTasks(func(ctx context.Context, l *tasks.Ledger) error {
				task, err := l.Add(ctx, strings.Join(args, " "))
				if task.ID == "" {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", shortTaskID(task.ID), task.Title)
				return err
			})
		},
	}
}

func tasksToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a task done or not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTasks(func(ctx context.Context, l *tasks.Ledger) error {
				id, err := resolveTaskID(l, args[0])
				if err != nil {
					return err
				}
				if err := l.Toggle(ctx, id); err != nil {
					return err
				}
				task, _ := l.Get(id)
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", doneMark(task), shortTaskID(id), task.Title)
				return nil
			})
		},
	}
}

func tasksRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTasks(func(ctx context.Context, l *tasks.Ledger) error {
				id, err := resolveTaskID(l, args[0])
				if err != nil {
					return err
				}
				if err := l.Delete(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", shortTaskID(id))
				return nil
			})
		},
	}
}

func tasksClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear-completed",
		Short: "Delete every completed task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTasks(func(ctx context.Context, l *tasks.Ledger) error {
				n := l.Stats().Completed
				if n == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No completed tasks.")
					return nil
				}
				if !yes {
					err := huh.NewConfirm().
						Title(fmt.Sprintf("Delete %d completed task(s)?", n)).
						Affirmative("Delete").
						Negative("Cancel").
						Value(&yes).
						Run()
					if errors.Is(err, huh.ErrUserAborted) {
						return nil
					}
					if err != nil {
						return err
					}
					if !yes {
						return nil
					}
				}
				removed, err := l.ClearCompleted(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d completed task(s)\n", removed)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func shortTaskID(id string) string {
	// UUIDv7 ids share their leading timestamp bits; the tail is random.
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return id
}

func doneMark(t model.Task) string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}
