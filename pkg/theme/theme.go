// Package theme wraps charm.land/lipgloss/v2 styles for the crash
// report and the terminal-unavailable message. None of this touches
// the per-frame hot path (the compositor paints cellbuf.Style
// directly); it exists purely for cmd/tstorie's startup/shutdown
// surfaces.
package theme

import (
	"fmt"

	"charm.land/lipgloss/v2"
)

var (
	crashTitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")).
		Bold(true)

	crashBodyStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	unavailableStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("214")).
		Padding(0, 1)
)

// RenderCrashReport formats a panic value and session id for stderr.
// The crash-log file write itself lives in pkg/lifecycle; this just
// formats it.
func RenderCrashReport(sessionID string, panicValue any) string {
	title := crashTitleStyle.Render("tstorie crashed")
	body := crashBodyStyle.Render(fmt.Sprintf("session %s: %v", sessionID, panicValue))
	return title + "\n" + body
}

// RenderTerminalUnavailable formats the message shown when stdout is
// not a TTY, before exiting with code 2.
func RenderTerminalUnavailable() string {
	return unavailableStyle.Render("tstorie requires an interactive terminal (TTY)")
}
