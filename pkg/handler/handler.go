// Package handler wires a text field to the ask endpoint: an Enter key press
// on the field sends its trimmed value and the reply replaces the contents of
// an output element.
package handler

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"scandoc_cli/pkg/ask"
	"scandoc_cli/pkg/render"

	"github.com/google/uuid"
)

// EnterKey is the key name that triggers a submission.
const EnterKey = "Enter"

// Field is the text input a query is read from.
type Field interface {
	Value() string
	Clear()
}

// Element is the output container. SetHTML replaces its whole content and
// may be called from the goroutine delivering a result.
type Element interface {
	SetHTML(html string)
}

// KindElement is an Element that is also told which kind of fragment it is
// showing. The handler prefers SetContent when the output implements it.
type KindElement interface {
	Element
	SetContent(html string, kind render.Kind)
}

// Asker performs one request/response round trip.
type Asker interface {
	Ask(ctx context.Context, query string) (string, error)
}

// Submission identifies one dispatched query.
type Submission struct {
	ID    string
	Seq   uint64
	Query string
}

// Result is the outcome of a submission.
type Result struct {
	Submission Submission
	Response   string
	Err        error
}

// HTML returns the fragment the output element shows for r.
func (r Result) HTML() string {
	if r.Err != nil {
		return render.Error(r.Err)
	}
	return render.Paragraph(r.Response)
}

// Kind reports whether r is a response or a failure.
func (r Result) Kind() render.Kind {
	if r.Err != nil {
		return render.KindError
	}
	return render.KindResponse
}

// Option configures a Handler.
type Option func(*Handler)

// WithObserver registers fn to be called after each result is applied.
func WithObserver(fn func(Result)) Option {
	return func(h *Handler) {
		h.observer = fn
	}
}

// Handler is the Enter-key input handler. Submissions are independent:
// nothing is retried, cancelled or de-duplicated, and whichever result is
// applied last owns the output element.
type Handler struct {
	asker  Asker
	field  Field
	output Element

	observer func(Result)

	seq      atomic.Uint64
	pending  atomic.Int64
	inflight sync.WaitGroup
}

// New creates a Handler reading from field and writing to output.
func New(asker Asker, field Field, output Element, opts ...Option) *Handler {
	h := &Handler{
		asker:  asker,
		field:  field,
		output: output,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleKey processes a key press on the field. On Enter with a non-empty
// trimmed value it shows the loading indicator, sends the request in the
// background and clears the field without waiting for the reply. It reports
// whether a submission was dispatched.
func (h *Handler) HandleKey(ctx context.Context, key string) bool {
	run, ok := h.Deferred(ctx, key)
	if !ok {
		return false
	}
	go func() {
		h.Apply(run())
	}()
	return true
}

// Deferred is HandleKey for callers that run the request themselves, such as
// an event loop that turns it into a command. The returned function performs
// the round trip and must be followed by Apply with its Result. The field is
// cleared before Deferred returns.
func (h *Handler) Deferred(ctx context.Context, key string) (func() Result, bool) {
	if key != EnterKey {
		return nil, false
	}

	query := strings.TrimSpace(h.field.Value())
	if query == "" {
		slog.Debug("submission_ignored", "reason", "empty_query")
		return nil, false
	}

	_, run := h.begin(ctx, query)
	h.field.Clear()
	return run, true
}

// Submit dispatches query directly, bypassing the field. Whitespace-only
// queries are ignored and reported as not dispatched.
func (h *Handler) Submit(ctx context.Context, query string) (Submission, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		slog.Debug("submission_ignored", "reason", "empty_query")
		return Submission{}, false
	}

	sub, run := h.begin(ctx, query)
	go func() {
		h.Apply(run())
	}()
	return sub, true
}

// Apply writes a result to the output element.
func (h *Handler) Apply(res Result) {
	h.show(res.HTML(), res.Kind())
	if res.Err != nil {
		slog.Warn("submission_failed",
			"request_id", res.Submission.ID,
			"seq", res.Submission.Seq,
			"error", res.Err,
		)
	} else {
		slog.Info("submission_done",
			"request_id", res.Submission.ID,
			"seq", res.Submission.Seq,
			"response_length", len(res.Response),
		)
	}
	if h.observer != nil {
		h.observer(res)
	}
	h.pending.Add(-1)
	h.inflight.Done()
}

// InFlight returns the number of submissions not yet applied.
func (h *Handler) InFlight() int {
	return int(h.pending.Load())
}

// Wait blocks until every dispatched submission has been applied.
func (h *Handler) Wait() {
	h.inflight.Wait()
}

func (h *Handler) show(html string, kind render.Kind) {
	if ke, ok := h.output.(KindElement); ok {
		ke.SetContent(html, kind)
		return
	}
	h.output.SetHTML(html)
}

func (h *Handler) begin(ctx context.Context, query string) (Submission, func() Result) {
	sub := Submission{
		ID:    uuid.NewString(),
		Seq:   h.seq.Add(1),
		Query: query,
	}

	h.inflight.Add(1)
	h.pending.Add(1)
	h.show(render.Loading(), render.KindLoading)

	slog.Info("submission_start",
		"request_id", sub.ID,
		"seq", sub.Seq,
		"query_length", len(query),
	)

	reqCtx := ask.WithRequestID(ctx, sub.ID)
	return sub, func() Result {
		resp, err := h.asker.Ask(reqCtx, query)
		return Result{Submission: sub, Response: resp, Err: err}
	}
}
