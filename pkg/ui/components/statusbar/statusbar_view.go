package statusbar

import (
	"fmt"
	"strings"

	"scandoc_cli/pkg/ui/components/utils"
	"scandoc_cli/pkg/ui/styles"

	"charm.land/lipgloss/v2"
)

const keyHints = "Enter ask | Ctrl+Y copy | Esc quit"

// StatusBarView handles the status bar rendering with Lipgloss
type StatusBarView struct {
	server   string
	message  string
	inFlight int
	width    int
	style    lipgloss.Style
}

// NewStatusBarView creates a status bar for the given server URL.
func NewStatusBarView(server string) *StatusBarView {
	return &StatusBarView{
		server: server,
		width:  80,
		style:  styles.StatusBarStyle,
	}
}

// SetMessage sets a temporary message shown in place of the server URL.
// An empty message restores the server URL.
func (s *StatusBarView) SetMessage(msg string) {
	s.message = msg
}

// SetInFlight updates the number of pending submissions.
func (s *StatusBarView) SetInFlight(n int) {
	s.inFlight = n
}

// SetWidth updates the width for rendering
func (s *StatusBarView) SetWidth(width int) {
	s.width = width
}

// SetTheme selects one of the config theme names.
func (s *StatusBarView) SetTheme(theme string) {
	s.style = styles.StatusBar(theme)
}

// Render returns the styled status bar string
func (s *StatusBarView) Render() string {
	// Padding(0, 1) adds one cell on each side.
	inner := s.width - 2
	if inner < 10 {
		inner = 10
	}

	left := "[scandoc] " + s.server
	if s.message != "" {
		left = "[scandoc] " + s.message
	}

	status := "idle"
	if s.inFlight > 0 {
		status = fmt.Sprintf("%d in flight", s.inFlight)
	}
	row := utils.Spread(inner, 1, left, status+" | "+keyHints, status)
	content := row.Left + strings.Repeat(" ", row.Gap) + row.Right

	return s.style.Render(content)
}
