// Package logging writes devnews diagnostics to a dated file in the data
// directory. The TUI owns the terminal, so nothing is ever logged to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

var (
	// Logger is the process-wide logger. Nil until Init or SetOutput is called.
	Logger *log.Logger

	logFile *os.File
)

// Init opens devnews-YYYY-MM-DD.log under dir/logs and points Logger at it.
func Init(dir string, level log.Level) error {
	logDir := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}

	name := fmt.Sprintf("devnews-%s.log", time.Now().Format("2006-01-02"))
	f, err := os.OpenFile(filepath.Join(logDir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	logFile = f

	SetOutput(f, level)
	Logger.Info("devnews started")
	return nil
}

// SetOutput routes logging to w. Tests use it to capture output.
func SetOutput(w io.Writer, level log.Level) {
	Logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
	})
}

// Close flushes and closes the log file.
func Close() {
	if Logger != nil {
		Logger.Info("devnews shutting down")
	}
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

// Info logs an info message.
func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

// Warn logs a warning.
func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

// Error logs an error.
func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// WithPrefix returns a component logger. Before Init it returns a logger
// that discards everything, so callers never need a nil check.
func WithPrefix(prefix string) *log.Logger {
	if Logger != nil {
		return Logger.WithPrefix(prefix)
	}
	return log.New(io.Discard)
}
