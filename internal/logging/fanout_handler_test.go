package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNewFanoutHandlerNilHandlers(t *testing.T) {
	h := newFanoutHandler(nil, nil)
	if _, ok := h.(NoopHandler); !ok {
		t.Fatalf("expected NoopHandler for all nil handlers, got %T", h)
	}
}

func TestNewFanoutHandlerSingleHandlerUnwrapped(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if h := newFanoutHandler(nil, inner); h != inner {
		t.Fatal("expected single non-nil handler to be returned unwrapped")
	}
}

func TestFanoutHandlerRespectsChildLevels(t *testing.T) {
	var console, file bytes.Buffer
	h := newFanoutHandler(
		slog.NewJSONHandler(&console, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewJSONHandler(&file, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected debug enabled through the file handler")
	}

	logger := slog.New(h)
	logger.Debug("debug only")
	logger.Warn("both")

	if strings.Contains(console.String(), "debug only") {
		t.Fatalf("console handler received debug record: %s", console.String())
	}
	if !strings.Contains(file.String(), "debug only") || !strings.Contains(file.String(), "both") {
		t.Fatalf("file handler missing records: %s", file.String())
	}
	if !strings.Contains(console.String(), "both") {
		t.Fatalf("console handler missing warning: %s", console.String())
	}
}

func TestFanoutHandlerWithAttrsPropagates(t *testing.T) {
	var a, b bytes.Buffer
	h := newFanoutHandler(slog.NewJSONHandler(&a, nil), slog.NewJSONHandler(&b, nil))
	slog.New(h).With("run", "abc").WithGroup("g").Info("msg", "k", "v")

	for _, out := range []string{a.String(), b.String()} {
		if !strings.Contains(out, `"run":"abc"`) || !strings.Contains(out, `"g":{"k":"v"}`) {
			t.Fatalf("attributes not propagated: %s", out)
		}
	}
}
