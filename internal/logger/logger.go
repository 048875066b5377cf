package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level represents a log level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of a log level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a log level string
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s", s)
	}
}

// Logger is a leveled logger. Output is discarded until a file or writer
// is attached, since stdout belongs to the full-screen UI.
type Logger struct {
	mu     sync.Mutex
	level  Level
	logger *log.Logger
	file   *os.File
	scope  string
	parent *Logger
}

// Default is the process-wide logger used by the package-level helpers.
var Default *Logger

func init() {
	Default = New()
}

// New creates a logger configured from CELEBTOUR_LOG_LEVEL and
// CELEBTOUR_LOG_FILE.
func New() *Logger {
	l := &Logger{
		level:  LevelInfo,
		logger: log.New(io.Discard, "", log.LstdFlags),
	}
	if err := l.Configure(os.Getenv("CELEBTOUR_LOG_LEVEL"), os.Getenv("CELEBTOUR_LOG_FILE")); err != nil {
		l.level = LevelInfo
	}
	return l
}

// Configure applies a level and log file path. Empty values leave the
// current setting untouched. A previously opened file is closed when a new
// one replaces it.
func (l *Logger) Configure(level, path string) error {
	root := l.root()
	root.mu.Lock()
	defer root.mu.Unlock()

	if level != "" {
		lv, err := ParseLevel(level)
		if err != nil {
			return err
		}
		root.level = lv
	}

	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	if root.file != nil {
		_ = root.file.Close()
	}
	root.file = f
	root.logger.SetOutput(f)
	return nil
}

// Named returns a logger that prefixes every line with the given component
// name and shares level and output with its parent.
func (l *Logger) Named(scope string) *Logger {
	return &Logger{scope: scope, parent: l.root()}
}

func (l *Logger) root() *Logger {
	if l.parent != nil {
		return l.parent
	}
	return l
}

// Close closes the logger and any open file handles
func (l *Logger) Close() error {
	root := l.root()
	root.mu.Lock()
	defer root.mu.Unlock()

	if root.file != nil {
		err := root.file.Close()
		root.file = nil
		root.logger.SetOutput(io.Discard)
		return err
	}
	return nil
}

// SetLevel sets the log level
func (l *Logger) SetLevel(level Level) {
	root := l.root()
	root.mu.Lock()
	defer root.mu.Unlock()
	root.level = level
}

// SetOutput sets the output writer
func (l *Logger) SetOutput(w io.Writer) {
	root := l.root()
	root.mu.Lock()
	defer root.mu.Unlock()
	root.logger.SetOutput(w)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...any) {
	l.log(LevelDebug, format, v...)
}

// Info logs an info message
func (l *Logger) Info(format string, v ...any) {
	l.log(LevelInfo, format, v...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, v ...any) {
	l.log(LevelWarn, format, v...)
}

// Error logs an error message
func (l *Logger) Error(format string, v ...any) {
	l.log(LevelError, format, v...)
}

func (l *Logger) log(level Level, format string, v ...any) {
	root := l.root()
	root.mu.Lock()
	defer root.mu.Unlock()

	if level < root.level {
		return
	}

	msg := fmt.Sprintf(format, v...)
	if l.scope != "" {
		root.logger.Printf("[%s] %s: %s", level, l.scope, msg)
		return
	}
	root.logger.Printf("[%s] %s", level, msg)
}

// Package-level functions that use the default logger

// Debug logs a debug message using the default logger
func Debug(format string, v ...any) {
	Default.Debug(format, v...)
}

// Info logs an info message using the default logger
func Info(format string, v ...any) {
	Default.Info(format, v...)
}

// Warn logs a warning message using the default logger
func Warn(format string, v ...any) {
	Default.Warn(format, v...)
}

// Error logs an error message using the default logger
func Error(format string, v ...any) {
	Default.Error(format, v...)
}

// Named returns a component logger derived from the default logger.
func Named(scope string) *Logger {
	return Default.Named(scope)
}

// Configure applies level and file settings to the default logger.
func Configure(level, path string) error {
	return Default.Configure(level, path)
}

// Close closes the default logger
func Close() error {
	return Default.Close()
}
