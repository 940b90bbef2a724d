package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskshop/internal/theme"
)

// Layout splits the terminal into a one-line header, the active screen and
// a one-line status bar.
type Layout struct {
	Width  int
	Height int
}

const chromeLines = 2

// NewLayout returns the layout for a terminal of the given size.
func NewLayout(width, height int) Layout {
	return Layout{Width: width, Height: height}
}

// ContentWidth is the width screens may draw into.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight is the height left between header and status bar.
func (l Layout) ContentHeight() int {
	return max(0, l.Height-chromeLines)
}

// bar lays left and right out on style's background across the full width.
func (l Layout) bar(style lipgloss.Style, left, right string) string {
	leftR := style.Render(left)
	rightR := ""
	if right != "" {
		rightR = style.Render(right)
	}

	gap := max(0, l.Width-lipgloss.Width(leftR)-lipgloss.Width(rightR))
	fill := lipgloss.NewStyle().
		Width(gap).
		Background(style.GetBackground()).
		Render("")
	return lipgloss.JoinHorizontal(lipgloss.Top, leftR, fill, rightR)
}

// RenderHeader shows the screen title on the left and session status on
// the right.
func (l Layout) RenderHeader(title, status string) string {
	return l.bar(theme.HeaderStyle, title, status)
}

// RenderStatusBar shows key hints, or a notice in their place.
func (l Layout) RenderStatusBar(hints string) string {
	return l.bar(theme.StatusBarStyle, hints, "")
}

// RenderWithFrame stacks header, content and status bar, clipping or
// padding content so the status bar stays on the last line.
func (l Layout) RenderWithFrame(header, content, statusBar string) string {
	if h := l.ContentHeight(); h > 0 {
		content = lipgloss.NewStyle().Height(h).MaxHeight(h).Render(content)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

// RenderTabs draws labels as a tab strip with active highlighted.
func RenderTabs(labels []string, active int) string {
	parts := make([]string, len(labels))
	for i, label := range labels {
		style := theme.TabStyle
		if i == active {
			style = theme.ActiveTabStyle
		}
		parts[i] = style.Render(label)
	}
	return strings.Join(parts, " ")
}
