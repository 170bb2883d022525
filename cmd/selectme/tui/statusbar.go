package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/x/ansi"

	"github.com/ruminaider/selectme/internal/theme"
)

// StatusBar renders the bottom row with selection counts and keyboard shortcuts.
type StatusBar struct {
	summary SelectionSummary
	hints   []key.Binding
	theme   theme.Theme
	width   int
}

// NewStatusBar creates a status bar with the default theme.
func NewStatusBar() StatusBar {
	return StatusBar{theme: theme.Default()}
}

// SetWidth sets the available width for rendering.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// Update refreshes the counts, the advertised keys and the theme.
func (s *StatusBar) Update(summary SelectionSummary, hints []key.Binding, th theme.Theme) {
	s.summary = summary
	s.hints = hints
	s.theme = th
}

// View renders the status bar.
func (s StatusBar) View() string {
	leftPart := fmt.Sprintf("%d/%d selected", s.summary.Selected, s.summary.Total)
	if s.summary.Name != "" {
		leftPart = fmt.Sprintf("%s · %s", s.summary.Name, leftPart)
	}

	shortcuts := make([]string, 0, len(s.hints))
	for _, h := range s.hints {
		shortcuts = append(shortcuts, s.theme.StatusKey.Render(h.Help().Key)+": "+h.Help().Desc)
	}
	rightPart := strings.Join(shortcuts, " · ")

	leftWidth := ansi.StringWidth(leftPart)
	rightWidth := ansi.StringWidth(rightPart)
	availableWidth := s.width - 2 // account for StatusBar padding
	gap := availableWidth - leftWidth - rightWidth
	if gap < 1 {
		gap = 1
	}

	content := leftPart + strings.Repeat(" ", gap) + rightPart
	return s.theme.StatusBar.Width(s.width).Render(content)
}
