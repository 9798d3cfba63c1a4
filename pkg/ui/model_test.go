package ui

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"scandoc_cli/pkg/ask"
	"scandoc_cli/pkg/render"
	"scandoc_cli/pkg/ui/components/testutils"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

type askFunc func(ctx context.Context, query string) (string, error)

func (f askFunc) Ask(ctx context.Context, query string) (string, error) {
	return f(ctx, query)
}

func echoAsker() askFunc {
	return func(_ context.Context, query string) (string, error) {
		return "answer to " + query, nil
	}
}

func newTestModel(t *testing.T, asker askFunc) (Model, *bytes.Buffer) {
	t.Helper()
	clip := &bytes.Buffer{}
	m := NewModel(context.Background(), asker, Options{
		ServerURL: "http://127.0.0.1:5000",
		Clipboard: clip,
	})
	m.Init()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	return updated.(Model), clip
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func typeQuery(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = update(t, m, testutils.NewTextKeyPressMsg(string(r)))
	}
	return m
}

// runResult executes a submission command and returns its message.
func runResult(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("Expected a submission command")
	}
	msg := cmd()
	if _, ok := msg.(resultMsg); !ok {
		t.Fatalf("Expected resultMsg, got %T", msg)
	}
	return msg
}

func TestModel_Initializing(t *testing.T) {
	m := NewModel(context.Background(), echoAsker(), Options{})
	if m.Render() != "Initializing..." {
		t.Errorf("Expected placeholder before first resize, got %q", m.Render())
	}
	if !m.View().AltScreen {
		t.Error("Expected alt screen view")
	}
}

func TestModel_EnterSubmits(t *testing.T) {
	m, _ := newTestModel(t, echoAsker())
	m = typeQuery(t, m, "  revenue?  ")

	m, cmd := update(t, m, testutils.TestKeyEnter)

	if m.OutputHTML() != "<p>Processing...</p>" {
		t.Errorf("Expected loading indicator, got %q", m.OutputHTML())
	}
	if m.InputValue() != "" {
		t.Errorf("Expected input cleared on dispatch, got %q", m.InputValue())
	}
	if !strings.Contains(ansi.Strip(m.Render()), "1 in flight") {
		t.Error("Expected in-flight count in status bar")
	}

	m, _ = update(t, m, runResult(t, cmd))

	if m.OutputHTML() != "<p>answer to revenue?</p>" {
		t.Errorf("Expected response paragraph, got %q", m.OutputHTML())
	}
	if !strings.Contains(ansi.Strip(m.Render()), "answer to revenue?") {
		t.Error("Expected response in rendered view")
	}
}

func TestModel_BlankEnterIgnored(t *testing.T) {
	m, _ := newTestModel(t, echoAsker())
	m = typeQuery(t, m, "   ")

	m, cmd := update(t, m, testutils.TestKeyEnter)

	if cmd != nil {
		t.Error("Expected no command for blank input")
	}
	if m.OutputHTML() != "" {
		t.Errorf("Expected output untouched, got %q", m.OutputHTML())
	}
	if m.InputValue() != "   " {
		t.Errorf("Expected input untouched, got %q", m.InputValue())
	}
}

func TestModel_ErrorDisplayed(t *testing.T) {
	m, _ := newTestModel(t, func(context.Context, string) (string, error) {
		return "", &ask.RequestFailure{Op: "send", Err: errors.New("Network down")}
	})
	m = typeQuery(t, m, "q")

	m, cmd := update(t, m, testutils.TestKeyEnter)
	m, _ = update(t, m, runResult(t, cmd))

	if m.OutputHTML() != "<p>Error: Network down</p>" {
		t.Errorf("Expected error paragraph, got %q", m.OutputHTML())
	}
	if m.output.Kind() != render.KindError {
		t.Errorf("Expected error kind, got %v", m.output.Kind())
	}
}

func TestModel_ErrorLookingReplyIsAResponse(t *testing.T) {
	m, _ := newTestModel(t, func(context.Context, string) (string, error) {
		return "Error: E42 means the scan was rotated", nil
	})
	m = typeQuery(t, m, "what is E42?")

	m, cmd := update(t, m, testutils.TestKeyEnter)
	m, _ = update(t, m, runResult(t, cmd))

	if m.OutputHTML() != "<p>Error: E42 means the scan was rotated</p>" {
		t.Errorf("Expected response paragraph, got %q", m.OutputHTML())
	}
	if m.output.Kind() != render.KindResponse {
		t.Errorf("Expected response kind, got %v", m.output.Kind())
	}
}

func TestModel_LastArrivalWins(t *testing.T) {
	m, _ := newTestModel(t, echoAsker())

	m = typeQuery(t, m, "first")
	m, firstCmd := update(t, m, testutils.TestKeyEnter)
	m = typeQuery(t, m, "second")
	m, secondCmd := update(t, m, testutils.TestKeyEnter)

	first := runResult(t, firstCmd)
	second := runResult(t, secondCmd)

	// The second request finishes first.
	m, _ = update(t, m, second)
	if m.OutputHTML() != "<p>answer to second</p>" {
		t.Errorf("Expected second answer, got %q", m.OutputHTML())
	}
	m, _ = update(t, m, first)
	if m.OutputHTML() != "<p>answer to first</p>" {
		t.Errorf("Expected first answer to overwrite, got %q", m.OutputHTML())
	}
}

func TestModel_QuitKeys(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{testutils.TestKeyEsc, testutils.TestKeyCtrlC} {
		m, _ := newTestModel(t, echoAsker())
		_, cmd := update(t, m, key)
		if cmd == nil {
			t.Fatalf("Expected quit command for %q", key.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("Expected QuitMsg for %q", key.String())
		}
	}
}

func TestModel_CopyOutput(t *testing.T) {
	m, clip := newTestModel(t, echoAsker())

	_, cmd := update(t, m, testutils.TestKeyCtrlY)
	if cmd != nil {
		t.Error("Expected nothing to copy from empty output")
	}

	m = typeQuery(t, m, "q")
	m, submit := update(t, m, testutils.TestKeyEnter)
	m, _ = update(t, m, runResult(t, submit))

	m, cmd = update(t, m, testutils.TestKeyCtrlY)
	if cmd == nil {
		t.Fatal("Expected copy command")
	}
	msg := cmd()
	copied, ok := msg.(copiedMsg)
	if !ok {
		t.Fatalf("Expected copiedMsg, got %T", msg)
	}
	if copied.chars != len("answer to q") {
		t.Errorf("Expected %d characters, got %d", len("answer to q"), copied.chars)
	}

	encoded := base64.StdEncoding.EncodeToString([]byte("answer to q"))
	if !strings.Contains(clip.String(), encoded) {
		t.Errorf("Expected OSC 52 payload %q in %q", encoded, clip.String())
	}

	m, _ = update(t, m, msg)
	if !strings.Contains(ansi.Strip(m.Render()), "Copied 11 characters") {
		t.Error("Expected copy notice in status bar")
	}
	m, _ = update(t, m, clearNoticeMsg{})
	if strings.Contains(ansi.Strip(m.Render()), "Copied") {
		t.Error("Expected copy notice cleared")
	}
}

func TestModel_ResizeKeepsOutput(t *testing.T) {
	m, _ := newTestModel(t, echoAsker())
	m = typeQuery(t, m, "q")
	m, cmd := update(t, m, testutils.TestKeyEnter)
	m, _ = update(t, m, runResult(t, cmd))

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if m.OutputHTML() != "<p>answer to q</p>" {
		t.Errorf("Expected output to survive resize, got %q", m.OutputHTML())
	}
	lines := strings.Split(m.Render(), "\n")
	if len(lines) != 30 {
		t.Errorf("Expected 30 lines, got %d", len(lines))
	}
}
