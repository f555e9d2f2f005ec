package logging

import (
	"context"
	"log/slog"
	"slices"
)

// fanoutHandler sends each record to every child whose level admits it; the
// console handler and the rotating JSON file are joined this way.
type fanoutHandler []slog.Handler

func newFanoutHandler(handlers ...slog.Handler) slog.Handler {
	children := slices.DeleteFunc(slices.Clone(handlers), func(h slog.Handler) bool { return h == nil })
	switch len(children) {
	case 0:
		return NoopHandler{}
	case 1:
		return children[0]
	default:
		return fanoutHandler(children)
	}
}

func (h fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return slices.ContainsFunc(h, func(child slog.Handler) bool {
		return child.Enabled(ctx, level)
	})
}

// Handle clones the record for every child but the last, since handlers may
// retain or mutate the attribute slice.
func (h fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	last := len(h) - 1
	for i, child := range h {
		if !child.Enabled(ctx, record.Level) {
			continue
		}
		rec := record
		if i < last {
			rec = record.Clone()
		}
		if err := child.Handle(ctx, rec); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (h fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(func(child slog.Handler) slog.Handler { return child.WithAttrs(attrs) })
}

func (h fanoutHandler) WithGroup(name string) slog.Handler {
	return h.derive(func(child slog.Handler) slog.Handler { return child.WithGroup(name) })
}

func (h fanoutHandler) derive(fn func(slog.Handler) slog.Handler) fanoutHandler {
	next := make(fanoutHandler, len(h))
	for i, child := range h {
		next[i] = fn(child)
	}
	return next
}
