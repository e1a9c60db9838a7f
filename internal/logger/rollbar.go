// ABOUTME: slog.Handler that forwards error-level records to Rollbar
// ABOUTME: Wraps another handler so local output is unchanged

package logger

import (
	"context"
	"log/slog"
)

// ReportFunc receives a message, an optional error and the record's
// attributes as extras. rollbar.Error has this shape.
type ReportFunc func(args ...any)

// RollbarHandler passes every record to next and also reports records at
// error level or above.
type RollbarHandler struct {
	next   slog.Handler
	report ReportFunc
	attrs  []slog.Attr
	group  string
}

func NewRollbarHandler(next slog.Handler, report ReportFunc) *RollbarHandler {
	return &RollbarHandler{next: next, report: report}
}

func (h *RollbarHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *RollbarHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError && h.report != nil {
		h.report(h.prepare(r)...)
	}
	return h.next.Handle(ctx, r)
}

func (h *RollbarHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := *h
	out.next = h.next.WithAttrs(attrs)
	out.attrs = append(append([]slog.Attr(nil), h.attrs...), h.qualify(attrs)...)
	return &out
}

func (h *RollbarHandler) WithGroup(name string) slog.Handler {
	out := *h
	out.next = h.next.WithGroup(name)
	if h.group != "" {
		out.group = h.group + "." + name
	} else {
		out.group = name
	}
	return &out
}

func (h *RollbarHandler) qualify(attrs []slog.Attr) []slog.Attr {
	if h.group == "" {
		return attrs
	}
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: h.group + "." + a.Key, Value: a.Value}
	}
	return out
}

// prepare builds rollbar arguments: message, the first error attribute if
// any, and the remaining attributes as extras.
func (h *RollbarHandler) prepare(r slog.Record) []any {
	extras := make(map[string]any, len(h.attrs)+r.NumAttrs())
	var cause error

	add := func(a slog.Attr) {
		v := a.Value.Resolve().Any()
		if err, ok := v.(error); ok && cause == nil {
			cause = err
			return
		}
		extras[a.Key] = v
	}
	for _, a := range h.attrs {
		add(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		for _, q := range h.qualify([]slog.Attr{a}) {
			add(q)
		}
		return true
	})

	args := []any{r.Message}
	if cause != nil {
		args = append(args, cause)
	}
	if len(extras) > 0 {
		args = append(args, extras)
	}
	return args
}
