// Package lineio is the plain frontend used when stdin is not a terminal:
// every input line is typed into the field and followed by Enter, and the
// output element is printed each time it changes.
package lineio

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"scandoc_cli/pkg/handler"
	"scandoc_cli/pkg/render"
)

const maxLineBytes = 1 << 20

// Options controls how the output element is printed.
type Options struct {
	// Raw prints the element's HTML instead of rendered text.
	Raw bool
	// Styled renders with terminal colors; otherwise plain text.
	Styled bool
	// Width wraps rendered text; <= 0 disables wrapping.
	Width int
}

// Run reads queries from in until EOF, then waits for every submission to
// finish before returning. When ctx ends Run stops reading at once, without
// waiting for another line, and returns nil once the cancelled submissions
// have been applied.
func Run(ctx context.Context, asker handler.Asker, in io.Reader, out io.Writer, opts Options) error {
	field := &lineField{}
	h := handler.New(asker, field, newPrinter(out, opts))

	lines, readErr := readLines(ctx, in)

	count := 0
	interrupted := false
loop:
	for {
		select {
		case <-ctx.Done():
			interrupted = true
			break loop
		case line, ok := <-lines:
			if !ok {
				break loop
			}
			count++
			field.set(line)
			h.HandleKey(ctx, handler.EnterKey)
		}
	}

	slog.Debug("lineio_input_done",
		"lines", count,
		"interrupted", interrupted,
		"in_flight", h.InFlight(),
	)
	h.Wait()

	if interrupted {
		return nil
	}
	if err := <-readErr; err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

// readLines scans in on its own goroutine so a blocked read never delays
// cancellation. The scan error is sent before lines is closed. The goroutine
// stays parked in Read after ctx ends until in returns.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
		close(lines)
	}()

	return lines, readErr
}

// AskOnce submits a single query, prints the output element as it changes and
// returns the submission's error, if any.
func AskOnce(ctx context.Context, asker handler.Asker, query string, out io.Writer, opts Options) error {
	var (
		mu     sync.Mutex
		result handler.Result
	)
	h := handler.New(asker, &lineField{}, newPrinter(out, opts), handler.WithObserver(func(r handler.Result) {
		mu.Lock()
		result = r
		mu.Unlock()
	}))

	if _, ok := h.Submit(ctx, query); !ok {
		return fmt.Errorf("query is empty")
	}
	h.Wait()

	mu.Lock()
	defer mu.Unlock()
	return result.Err
}

type lineField struct {
	mu    sync.Mutex
	value string
}

func (f *lineField) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

func (f *lineField) Clear() {
	f.set("")
}

func (f *lineField) set(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = v
}

// printer is an output element that writes every update to a stream.
type printer struct {
	mu   sync.Mutex
	w    io.Writer
	opts Options
}

func newPrinter(w io.Writer, opts Options) *printer {
	return &printer{w: w, opts: opts}
}

func (p *printer) SetHTML(html string) {
	var text string
	switch {
	case p.opts.Raw:
		text = html
	case p.opts.Styled:
		text = render.Terminal(html, p.opts.Width)
	default:
		text = render.Text(html, p.opts.Width)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := fmt.Fprintln(p.w, text); err != nil {
		slog.Warn("lineio_write_failed", "error", err)
	}
}
