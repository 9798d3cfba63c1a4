// Package ui is the interactive terminal frontend: a query field, an output
// pane and a status bar driven by the Enter-key handler.
package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"scandoc_cli/pkg/handler"
	"scandoc_cli/pkg/ui/components/input"
	"scandoc_cli/pkg/ui/components/statusbar"
	"scandoc_cli/pkg/ui/components/viewport"
	"scandoc_cli/pkg/ui/components/welcome"
	"scandoc_cli/pkg/ui/styles"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// title, separator, input and status bar
const chromeHeight = 4

const (
	scrollHint    = "PgUp/PgDn scroll"
	noticeTimeout = 3 * time.Second
)

// Options configures the terminal frontend.
type Options struct {
	ServerURL string
	Theme     string

	// Clipboard receives OSC 52 sequences on Ctrl+Y. Defaults to os.Stdout.
	Clipboard io.Writer
}

// resultMsg carries a finished submission back into the event loop.
type resultMsg struct {
	result handler.Result
}

type copiedMsg struct {
	chars int
}

type clearNoticeMsg struct{}

// Model represents the Bubble Tea application state
type Model struct {
	ctx     context.Context
	handler *handler.Handler

	// UI Components
	input     *input.QueryInput
	output    *viewport.OutputViewport
	statusBar *statusbar.StatusBarView

	clipboard io.Writer

	// UI state
	width  int
	height int
	ready  bool
}

// NewModel creates the model. ctx bounds every submission; cancelling it
// aborts requests still in flight.
func NewModel(ctx context.Context, asker handler.Asker, opts Options) Model {
	in := input.NewQueryInput()
	out := viewport.NewOutputViewport()

	sb := statusbar.NewStatusBarView(opts.ServerURL)
	sb.SetTheme(opts.Theme)

	clip := opts.Clipboard
	if clip == nil {
		clip = os.Stdout
	}

	return Model{
		ctx:       ctx,
		handler:   handler.New(asker, in, out),
		input:     in,
		output:    out,
		statusBar: sb,
		clipboard: clip,
	}
}

// Init focuses the query field (Bubble Tea lifecycle method)
func (m Model) Init() tea.Cmd {
	return m.input.Focus()
}

// Update handles messages and updates model state (Bubble Tea lifecycle method)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case resultMsg:
		// Results are applied in the order they arrive, so the last one to
		// finish owns the output pane.
		m.handler.Apply(msg.result)
		return m, nil

	case copiedMsg:
		m.statusBar.SetMessage(fmt.Sprintf("Copied %d characters", msg.chars))
		return m, tea.Tick(noticeTimeout, func(time.Time) tea.Msg { return clearNoticeMsg{} })

	case clearNoticeMsg:
		m.statusBar.SetMessage("")
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			slog.Info("ui_quit", "in_flight", m.handler.InFlight())
			return m, tea.Quit

		case "enter":
			return m, m.submit()

		case "ctrl+y":
			return m, m.copyOutput()

		case "pgup", "pgdown":
			return m, m.output.Update(msg)
		}
	}

	return m, m.input.Update(msg)
}

// submit hands an Enter press to the handler and turns the request into a
// command so the reply comes back through Update.
func (m Model) submit() tea.Cmd {
	run, ok := m.handler.Deferred(m.ctx, handler.EnterKey)
	if !ok {
		return nil
	}
	return func() tea.Msg {
		return resultMsg{result: run()}
	}
}

func (m Model) copyOutput() tea.Cmd {
	text := m.output.Text()
	if strings.TrimSpace(text) == "" {
		return nil
	}
	w := m.clipboard
	return func() tea.Msg {
		if _, err := fmt.Fprint(w, osc52.New(text)); err != nil {
			slog.Warn("clipboard_copy_failed", "error", err)
			return nil
		}
		return copiedMsg{chars: len([]rune(text))}
	}
}

func (m *Model) layout() {
	outputHeight := m.height - chromeHeight
	if outputHeight < 1 {
		outputHeight = 1
	}
	m.output.SetSize(m.width, outputHeight)
	m.input.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)
}

// View renders the UI (Bubble Tea lifecycle method)
func (m Model) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	return v
}

// Render returns the screen content as a string.
func (m Model) Render() string {
	if !m.ready {
		return "Initializing..."
	}

	m.statusBar.SetInFlight(m.handler.InFlight())

	sections := []string{
		welcome.Title(m.width, scrollHint),
		m.output.View(),
		styles.SeparatorStyle.Render(strings.Repeat("─", m.width)),
		m.input.View(),
		m.statusBar.Render(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// OutputHTML returns the current content of the output pane.
func (m Model) OutputHTML() string {
	return m.output.HTML()
}

// InputValue returns the current text of the query field.
func (m Model) InputValue() string {
	return m.input.Value()
}
