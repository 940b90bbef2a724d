// Package main provides the taskshop CLI entrypoint.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhle/taskshop/internal/app"
	"github.com/nhle/taskshop/internal/model"
)

var (
	version    = "0.1.0"
	configPath string
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taskshop [path]",
		Short: "Tasks and a storefront in your terminal",
		Long: `taskshop: a to-do list and a small shop behind one sign-in.

Usage modes:
  taskshop          Start the interactive UI on the dashboard
  taskshop <path>   Start on a screen, e.g. taskshop /cart
  taskshop <cmd>    Run a command (see below)`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := ""
			if len(args) > 0 {
				start = args[0]
			}
			return runTUI(start)
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", model.DefaultConfigPath(), "Config file")

	cmd.AddGroup(
		&cobra.Group{ID: "data", Title: "Data:"},
	)

	for _, sub := range []*cobra.Command{tasksCmd(), productsCmd(), ordersCmd()} {
		sub.GroupID = "data"
		cmd.AddCommand(sub)
	}
	cmd.AddCommand(versionCmd())

	return cmd
}

func runTUI(startPath string) error {
	e, err := setup(configPath)
	if err != nil {
		return err
	}
	defer e.Close()

	deps, err := e.appDeps(startPath)
	if err != nil {
		return err
	}
	defer deps.Guard.Close()

	p := tea.NewProgram(app.New(deps), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		e.logger.WithError(err).Error("ui exited")
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taskshop %s\n", version)
		},
	}
}
