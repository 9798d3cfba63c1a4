package viewport

import (
	"sync"

	"scandoc_cli/pkg/render"
	"scandoc_cli/pkg/ui/styles"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
)

// OutputViewport is the output element of the terminal UI. It stores the
// element's HTML and shows its terminal rendering in a scrollable viewport.
type OutputViewport struct {
	mu       sync.Mutex
	Viewport viewport.Model
	html     string
	kind     render.Kind
	width    int
	ready    bool
}

// NewOutputViewport creates an empty output viewport.
func NewOutputViewport() *OutputViewport {
	return &OutputViewport{
		Viewport: viewport.New(),
	}
}

// SetHTML replaces the element's content with a response fragment.
func (v *OutputViewport) SetHTML(html string) {
	v.SetContent(html, render.KindResponse)
}

// SetContent replaces the element's content and scrolls back to the top.
// kind selects the styling.
func (v *OutputViewport) SetContent(html string, kind render.Kind) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.html = html
	v.kind = kind
	v.refresh()
	v.Viewport.GotoTop()
}

// Kind returns the kind of fragment currently shown.
func (v *OutputViewport) Kind() render.Kind {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.kind
}

// HTML returns the element's current content.
func (v *OutputViewport) HTML() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.html
}

// Text returns the content as plain wrapped text.
func (v *OutputViewport) Text() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return render.Text(v.html, v.width)
}

// SetSize updates the viewport dimensions and rewraps the content.
func (v *OutputViewport) SetSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.width = width
	v.Viewport.SetWidth(width)
	v.Viewport.SetHeight(height)
	v.ready = true
	v.refresh()
}

// Update handles viewport scrolling.
func (v *OutputViewport) Update(msg tea.Msg) tea.Cmd {
	v.mu.Lock()
	defer v.mu.Unlock()

	var cmd tea.Cmd
	v.Viewport, cmd = v.Viewport.Update(msg)
	return cmd
}

// View renders the viewport.
func (v *OutputViewport) View() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.ready {
		return ""
	}
	return v.Viewport.View()
}

func (v *OutputViewport) refresh() {
	v.Viewport.SetContent(styledFragment(v.html, v.kind, v.width))
}

func styledFragment(html string, kind render.Kind, width int) string {
	if html == "" {
		return ""
	}
	switch kind {
	case render.KindLoading:
		return styles.LoadingStyle.Render(render.Text(html, width))
	case render.KindError:
		return styles.ErrorStyle.Render(render.Text(html, width))
	default:
		return render.Terminal(html, width)
	}
}
