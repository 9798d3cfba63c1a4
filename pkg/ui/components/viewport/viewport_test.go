package viewport

import (
	"strings"
	"sync"
	"testing"

	"scandoc_cli/pkg/render"
	"scandoc_cli/pkg/ui/styles"

	"github.com/charmbracelet/x/ansi"
)

func TestNewOutputViewport(t *testing.T) {
	vp := NewOutputViewport()

	if vp.ready {
		t.Error("Expected viewport to not be ready initially")
	}

	if vp.HTML() != "" {
		t.Error("Expected empty content initially")
	}

	if vp.View() != "" {
		t.Errorf("Expected empty view before sizing, got %q", vp.View())
	}
}

func TestOutputViewport_SetSize(t *testing.T) {
	vp := NewOutputViewport()

	vp.SetSize(80, 24)

	if vp.Viewport.Width() != 80 {
		t.Errorf("Expected width 80, got %d", vp.Viewport.Width())
	}

	if vp.Viewport.Height() != 24 {
		t.Errorf("Expected height 24, got %d", vp.Viewport.Height())
	}

	if !vp.ready {
		t.Error("Expected viewport to be ready after SetSize")
	}
}

func TestOutputViewport_SetHTML(t *testing.T) {
	vp := NewOutputViewport()
	vp.SetSize(40, 5)

	vp.SetHTML("<p>Revenue grew <b>12%</b></p>")

	if vp.HTML() != "<p>Revenue grew <b>12%</b></p>" {
		t.Errorf("Expected HTML to be stored verbatim, got %q", vp.HTML())
	}
	if vp.Text() != "Revenue grew 12%" {
		t.Errorf("Expected plain text, got %q", vp.Text())
	}
	if view := ansi.Strip(vp.View()); !strings.Contains(view, "Revenue grew 12%") {
		t.Errorf("Expected rendered text in view, got %q", view)
	}
}

func TestOutputViewport_LoadingAndError(t *testing.T) {
	vp := NewOutputViewport()
	vp.SetSize(40, 5)

	vp.SetContent("<p>Processing...</p>", render.KindLoading)
	if view := ansi.Strip(vp.View()); !strings.Contains(view, "Processing...") {
		t.Errorf("Expected loading indicator in view, got %q", view)
	}

	vp.SetContent("<p>Error: Network down</p>", render.KindError)
	if vp.Kind() != render.KindError {
		t.Errorf("Expected error kind, got %v", vp.Kind())
	}
	if view := ansi.Strip(vp.View()); !strings.Contains(view, "Error: Network down") {
		t.Errorf("Expected error in view, got %q", view)
	}
	if strings.Contains(ansi.Strip(vp.View()), "Processing...") {
		t.Error("Expected loading indicator to be replaced")
	}
}

func TestOutputViewport_RewrapsOnResize(t *testing.T) {
	vp := NewOutputViewport()
	vp.SetSize(80, 5)
	vp.SetHTML("<p>alpha beta gamma</p>")

	if vp.Text() != "alpha beta gamma" {
		t.Errorf("Expected single line, got %q", vp.Text())
	}

	vp.SetSize(10, 5)
	if vp.Text() != "alpha beta\ngamma" {
		t.Errorf("Expected rewrapped text, got %q", vp.Text())
	}
}

func TestOutputViewport_ConcurrentSetHTML(t *testing.T) {
	vp := NewOutputViewport()
	vp.SetSize(40, 5)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			vp.SetHTML("<p>same</p>")
		}()
	}
	wg.Wait()

	if vp.HTML() != "<p>same</p>" {
		t.Errorf("Expected final content, got %q", vp.HTML())
	}
}

func TestOutputViewport_StylesByKindNotText(t *testing.T) {
	const html = "<p>Error: codes are listed in the appendix</p>"

	vp := NewOutputViewport()
	vp.SetSize(60, 5)
	vp.SetHTML(html)

	if vp.Kind() != render.KindResponse {
		t.Errorf("Expected SetHTML to store a response, got %v", vp.Kind())
	}

	tests := []struct {
		kind render.Kind
		want string
	}{
		{kind: render.KindResponse, want: render.Terminal(html, 60)},
		{kind: render.KindError, want: styles.ErrorStyle.Render(render.Text(html, 60))},
		{kind: render.KindLoading, want: styles.LoadingStyle.Render(render.Text(html, 60))},
	}
	for _, tt := range tests {
		if got := styledFragment(html, tt.kind, 60); got != tt.want {
			t.Errorf("styledFragment(%v) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
