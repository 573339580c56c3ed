package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	// Logger is the global logger instance
	Logger *log.Logger

	// logFile is the file handle for the log file
	logFile *os.File

	mx sync.Mutex
)

// ParseLevel converts a level name into a log level. Unknown names map to info.
func ParseLevel(s string) log.Level {
	l, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return log.InfoLevel
	}
	return l
}

// Init opens the log file at path and installs the global logger.
func Init(level, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	mx.Lock()
	defer mx.Unlock()

	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	Logger = newLogger(f, level)
	slog.SetDefault(slog.New(Logger))
	Logger.Info("acmeui started", "level", Logger.GetLevel().String())

	return nil
}

// InitWriter installs a global logger writing to w. Used by headless commands.
func InitWriter(w io.Writer, level string) {
	mx.Lock()
	defer mx.Unlock()

	Logger = newLogger(w, level)
	slog.SetDefault(slog.New(Logger))
}

func newLogger(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           ParseLevel(level),
	})
}

// Close closes the log file
func Close() {
	mx.Lock()
	defer mx.Unlock()

	if Logger != nil {
		Logger.Info("acmeui shutting down")
	}
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// Slog returns a structured logger over the global logger. Before Init it
// discards everything.
func Slog() *slog.Logger {
	mx.Lock()
	defer mx.Unlock()

	if Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(Logger)
}
