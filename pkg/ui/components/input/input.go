package input

import (
	"sync"

	"scandoc_cli/pkg/ui/styles"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

const (
	// Prompt is drawn in front of the text field.
	Prompt = "> "

	// Placeholder is shown while the field is empty.
	Placeholder = "Ask about your documents..."

	charLimit = 4096
)

// QueryInput is the single-line query field. It wraps a bubbles textinput
// and satisfies the handler's field interface.
type QueryInput struct {
	mu    sync.Mutex
	model textinput.Model
}

// NewQueryInput creates an empty, unfocused query field.
func NewQueryInput() *QueryInput {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = Placeholder
	ti.CharLimit = charLimit
	return &QueryInput{model: ti}
}

// Value returns the raw text of the field.
func (in *QueryInput) Value() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.model.Value()
}

// SetValue replaces the text of the field.
func (in *QueryInput) SetValue(s string) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.model.SetValue(s)
}

// Clear empties the field.
func (in *QueryInput) Clear() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.model.Reset()
}

// Focus gives the field keyboard focus.
func (in *QueryInput) Focus() tea.Cmd {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.model.Focus()
}

// SetWidth sets the total width including the prompt.
func (in *QueryInput) SetWidth(width int) {
	in.mu.Lock()
	defer in.mu.Unlock()

	w := width - len(Prompt) - 1
	if w < 1 {
		w = 1
	}
	in.model.SetWidth(w)
}

// Update forwards editing keys to the text field.
func (in *QueryInput) Update(msg tea.Msg) tea.Cmd {
	in.mu.Lock()
	defer in.mu.Unlock()

	var cmd tea.Cmd
	in.model, cmd = in.model.Update(msg)
	return cmd
}

// View renders the prompt and the field.
func (in *QueryInput) View() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return styles.PromptStyle.Render(Prompt) + in.model.View()
}
