// Package logging configures the structured logger shared by the CLI and
// the fixture runner.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

// Logger is a charmbracelet logger that may own a log file.
type Logger struct {
	*log.Logger
	file *os.File
}

// New creates a logger writing to w according to config. When config.File
// is set, entries are also appended to that file.
func New(w io.Writer, config LoggingConfig) (*Logger, error) {
	level, err := ParseLevel(config.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", config.Level, err)
	}
	formatter, err := parseFormatter(config.Format)
	if err != nil {
		return nil, err
	}

	var file *os.File
	if config.File != "" {
		if err := os.MkdirAll(filepath.Dir(config.File), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err = os.OpenFile(config.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = io.MultiWriter(w, file)
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: config.Timestamp,
		ReportCaller:    config.Caller,
	})

	return &Logger{Logger: logger, file: file}, nil
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// With returns a child logger carrying the given key/value pairs. The child
// shares the parent's file and must not be closed.
func (l *Logger) With(keyvals ...interface{}) *Logger {
	return &Logger{Logger: l.Logger.With(keyvals...)}
}

// Context key for logger
type contextKey string

const loggerContextKey contextKey = "logger"

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

// FromContext retrieves a logger from the context
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*Logger); ok {
		return logger
	}
	return GetDefault()
}

var (
	defaultLogger     *Logger
	defaultLoggerOnce sync.Once
	defaultMu         sync.RWMutex
)

// GetDefault returns the default global logger
func GetDefault() *Logger {
	defaultLoggerOnce.Do(func() {
		logger, _ := New(os.Stderr, DefaultConfig())
		defaultLogger = logger
	})
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default global logger
func SetDefault(logger *Logger) {
	defaultLoggerOnce.Do(func() {})
	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
}

// ResetDefault replaces the default logger with a fresh stderr logger using
// DefaultConfig. Call it after closing a logger that was installed with
// SetDefault.
func ResetDefault() {
	logger, _ := New(os.Stderr, DefaultConfig())
	SetDefault(logger)
}
