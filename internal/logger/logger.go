// Package logger provides the structured logging interface used across
// dtop's host managers, action executor, and CLI. Debug-level output is
// gated on DTOP_DEBUG; info and above are always written to the log file.
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Logger defines the interface for logging operations. All methods accept a
// format string and arguments, similar to fmt.Printf.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// logrusLogger implements Logger by writing structured entries to a
// *logrus.Logger, tagged with a component field so multi-host log lines
// stay distinguishable in the file.
type logrusLogger struct {
	entry *logrus.Entry
}

// NewFileLogger opens (creating if necessary) dtop's log file and returns a
// Logger that writes to it with prefix attached as the "component" field.
// The dashboard's own screen is the wrong place for log lines since bubbletea
// owns the full terminal, so all diagnostic output goes to disk instead.
func NewFileLogger(prefix string) (Logger, error) {
	path, err := logFilePath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	l := logrus.New()
	l.SetOutput(f)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if os.Getenv("DTOP_DEBUG") != "" {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}

	return &logrusLogger{entry: l.WithField("component", prefix)}, nil
}

func logFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "dtop", "dtop.log"), nil
}

func (l *logrusLogger) Debug(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *logrusLogger) Info(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *logrusLogger) Warn(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *logrusLogger) Error(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

// noopLogger implements Logger but discards all messages.
type noopLogger struct{}

// Noop returns a logger that discards all messages.
func Noop() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(format string, args ...interface{}) {}
func (l *noopLogger) Info(format string, args ...interface{})  {}
func (l *noopLogger) Warn(format string, args ...interface{})  {}
func (l *noopLogger) Error(format string, args ...interface{}) {}

// LogMessage represents a captured log message.
type LogMessage struct {
	Level   string
	Message string
}

// BufferLogger captures log messages for test assertions.
type BufferLogger struct {
	Messages []LogMessage
}

// NewBufferLogger creates a logger that captures messages for inspection.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{Messages: make([]LogMessage, 0)}
}

func (l *BufferLogger) Debug(format string, args ...interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: "debug", Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Info(format string, args ...interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: "info", Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Warn(format string, args ...interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: "warn", Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Error(format string, args ...interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: "error", Message: fmt.Sprintf(format, args...)})
}

// HasLevel returns true if any message was logged at the given level.
func (l *BufferLogger) HasLevel(level string) bool {
	for _, m := range l.Messages {
		if m.Level == level {
			return true
		}
	}
	return false
}

// Clear removes all captured messages.
func (l *BufferLogger) Clear() {
	l.Messages = l.Messages[:0]
}

// defaultLogger is the package-level default logger; it discards messages
// until SetDefault replaces it.
var defaultLogger Logger = Noop()

// Default returns the default logger for the package.
func Default() Logger {
	return defaultLogger
}

// SetDefault sets the default logger for the package.
func SetDefault(l Logger) {
	defaultLogger = l
}
