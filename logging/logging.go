// The logging package is the single logging surface for nmage2d.
//
// As a library nmage2d is silent by default: the package-level logger is a
// no-op handler until SetLogger is called. Applications that want log output
// either pass their own slog.Logger to SetLogger, or use New to get a
// JSON logger with file rotation.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// nopHandler discards all records. Enabled returns false so callers skip
// message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := slog.New(nopHandler{})
	loggerPtr.Store(l)
}

// SetLogger sets the logger used by nmage2d and all its packages.
// Passing nil restores the default silent behavior.
func SetLogger(l *slog.Logger) {

	if l == nil {
		l = slog.New(nopHandler{})
	}

	loggerPtr.Store(l)
}

// Logger returns the currently set logger
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// New creates a logger writing JSON records to a rotated file in dir.
// Level is one of debug/info/warn/error. If dir is empty the user config
// dir is used, falling back to the working dir.
func New(level, dir string) *slog.Logger {

	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to find user config dir: %v\n", err)
			dir = "."
		}
		dir = filepath.Join(dir, "nmage2d")
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "nmage2d.slog"),
		MaxSize:    32, // MB
		MaxBackups: 1,
	}

	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
		w.MaxSize = 256
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		fmt.Fprintf(os.Stderr, "%s: invalid log level\n", level)
	}

	l := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))

	l.Info("Hello logging", slog.Time("start", time.Now()),
		slog.String("GOARCH", runtime.GOARCH),
		slog.String("GOOS", runtime.GOOS),
		slog.Int("NumCPUs", runtime.NumCPU()))

	return l
}

func Debugf(format string, args ...any) {
	l := Logger()
	if l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug(fmt.Sprintf(format, args...))
	}
}

func Infof(format string, args ...any) {
	l := Logger()
	if l.Enabled(context.Background(), slog.LevelInfo) {
		l.Info(fmt.Sprintf(format, args...))
	}
}

func Warnf(format string, args ...any) {
	l := Logger()
	if l.Enabled(context.Background(), slog.LevelWarn) {
		l.Warn(fmt.Sprintf(format, args...))
	}
}

func Errorf(format string, args ...any) {
	l := Logger()
	if l.Enabled(context.Background(), slog.LevelError) {
		l.Error(fmt.Sprintf(format, args...))
	}
}
