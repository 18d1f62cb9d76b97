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
	inner := newLineHandler(&buf, slog.LevelInfo, layoutConsole)

	h := newFanoutHandler(nil, inner, nil)
	if h != slog.Handler(inner) {
		t.Fatal("expected single non-nil handler to be returned unwrapped")
	}
}

func TestFanoutHandlerRoutesByLevel(t *testing.T) {
	var infoBuf, debugBuf bytes.Buffer
	infoHandler := newLineHandler(&infoBuf, slog.LevelInfo, layoutConsole)
	debugHandler := newLineHandler(&debugBuf, slog.LevelDebug, layoutConsole)

	h := newFanoutHandler(infoHandler, debugHandler)
	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected fanout enabled for debug when one handler accepts it")
	}

	logger := slog.New(h)
	logger.Debug("debug only message")

	if infoBuf.Len() != 0 {
		t.Fatalf("info handler should not receive debug messages, got %q", infoBuf.String())
	}
	if !strings.Contains(debugBuf.String(), "DEBUG: debug only message") {
		t.Fatalf("debug handler missing message: %q", debugBuf.String())
	}
}

func TestFanoutHandlerWithAttrsReachesEveryHandler(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	h := newFanoutHandler(
		newLineHandler(&buf1, slog.LevelInfo, layoutConsole),
		newLineHandler(&buf2, slog.LevelInfo, layoutFile),
	)
	logger := slog.New(h.WithAttrs([]slog.Attr{slog.String("key", "value")}))
	logger.Info("test")

	for name, buf := range map[string]*bytes.Buffer{"console": &buf1, "file": &buf2} {
		if !strings.Contains(buf.String(), "key=value") {
			t.Errorf("expected key attribute in %s output, got %q", name, buf.String())
		}
	}
}

func TestFanoutHandlerWithGroupPrefixesKeys(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	h := newFanoutHandler(
		newLineHandler(&buf1, slog.LevelInfo, layoutConsole),
		newLineHandler(&buf2, slog.LevelInfo, layoutConsole),
	)
	logger := slog.New(h.WithGroup("tool"))
	logger.Info("test", slog.String("name", "mkvmerge"))

	for _, buf := range []*bytes.Buffer{&buf1, &buf2} {
		if !strings.Contains(buf.String(), "tool.name=mkvmerge") {
			t.Errorf("expected grouped key, got %q", buf.String())
		}
	}
}
