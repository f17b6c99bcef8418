package logging

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
)

type captureHandler struct {
	level   slog.Level
	records []slog.Record
}

func (h *captureHandler) Enabled(_ context.Context, l slog.Level) bool { return l >= h.level }
func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler           { return h }
func (h *captureHandler) WithGroup(string) slog.Handler                { return h }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r)
	return nil
}

func TestSilentByDefault(t *testing.T) {

	SetLogger(nil)

	l := Logger()
	if l == nil {
		t.Fatal("logger must never be nil")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("the default logger must be silent")
	}

	// Must not panic
	Errorf("dropped %d", 1)
}

func TestPackageHelpersRespectLevel(t *testing.T) {

	h := &captureHandler{level: slog.LevelWarn}
	SetLogger(slog.New(h))
	defer SetLogger(nil)

	Debugf("nope")
	Infof("nope")
	Warnf("warned about %s", "something")
	Errorf("failed with %v", fmt.Errorf("boom"))

	if len(h.records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(h.records))
	}
	if h.records[0].Message != "warned about something" {
		t.Errorf("unexpected message %q", h.records[0].Message)
	}
	if h.records[1].Level != slog.LevelError {
		t.Errorf("unexpected level %v", h.records[1].Level)
	}
}

func TestSetLoggerNilRestoresSilence(t *testing.T) {

	h := &captureHandler{}
	SetLogger(slog.New(h))
	SetLogger(nil)

	Errorf("should vanish")
	if len(h.records) != 0 {
		t.Errorf("expected no records, got %d", len(h.records))
	}
}

func TestNewWritesToDir(t *testing.T) {

	dir := t.TempDir()
	l := New("debug", dir)
	if l == nil {
		t.Fatal("expected a logger")
	}

	if !l.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug level not applied")
	}
}
