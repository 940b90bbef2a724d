package ui

import tea "github.com/charmbracelet/bubbletea"

// NavigateMsg asks the root model to show the screen at Path.
type NavigateMsg struct {
	Path string
}

// Navigate returns a command that emits a NavigateMsg.
func Navigate(path string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Path: path}
	}
}

// FormWidth clamps a form width to a readable range.
func FormWidth(width int) int {
	return min(max(width-4, 40), 80)
}

// FormHeight clamps a form height.
func FormHeight(height int) int {
	return max(height-6, 10)
}
