package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var (
	mu       sync.Mutex
	levelVar = new(slog.LevelVar)
	base     = discard()
	logFile  *os.File
	initDone bool
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Init opens the log file and routes every component logger to it. The TUI
// owns stdout, so nothing is ever written to the terminal. Calling Init a
// second time is a no-op.
func Init(path string, debug bool) error {
	mu.Lock()
	defer mu.Unlock()

	if initDone {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", path, err)
	}
	logFile = f
	if debug {
		levelVar.Set(slog.LevelDebug)
	} else {
		levelVar.Set(slog.LevelInfo)
	}
	base = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))
	initDone = true

	base.Info("logger initialized", "path", path)
	return nil
}

// SetDebug toggles debug output at runtime.
func SetDebug(enabled bool) {
	if enabled {
		levelVar.Set(slog.LevelDebug)
		return
	}
	levelVar.Set(slog.LevelInfo)
}

// With attaches attributes to every logger handed out from now on.
func With(args ...any) {
	mu.Lock()
	defer mu.Unlock()
	base = base.With(args...)
}

// ComponentLogger returns a logger with the component attribute pre-attached.
//
//	log := logger.ComponentLogger("projects")
//	log.Warn("github fetch failed", "err", err)
func ComponentLogger(component string) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return base.With(slog.String("component", component))
}

// Writer is the open log file, or nil before Init. Subprocess loggers such as
// plugin hosts write here.
func Writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	return logFile
}

func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	base = discard()
	initDone = false
}

// Reset restores the pre-Init state. Tests only.
func Reset() {
	Close()
	levelVar = new(slog.LevelVar)
}
