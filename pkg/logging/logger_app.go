package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	golog "github.com/fclairamb/go-log"
)

var _ golog.Logger = (*AppLogger)(nil)

// AppLogger is a leveled logfmt logger implementing the go-log.Logger interface
type AppLogger struct {
	level   LogLevel
	logger  *log.Logger
	closer  io.Closer // nil if logging to stdout
	context []interface{}
}

// NewAppLogger creates an application logger writing to logPath, or stdout when empty
func NewAppLogger(logPath string, level LogLevel) (*AppLogger, error) {
	var writer io.Writer = os.Stdout
	var closer io.Closer

	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening app log file: %w", err)
		}
		writer = f
		closer = f
	}

	l := newAppLogger(writer, level)
	l.closer = closer
	return l, nil
}

func newAppLogger(w io.Writer, level LogLevel) *AppLogger {
	return &AppLogger{
		level:  level,
		logger: log.New(w, "", 0),
	}
}

func (l *AppLogger) shouldLog(level LogLevel) bool {
	return levelRank[level] >= levelRank[l.level]
}

func (l *AppLogger) log(level LogLevel, message string, keyvals ...interface{}) {
	if !l.shouldLog(level) {
		return
	}

	kv := formatPairs(append(append([]interface{}{}, l.context...), keyvals...))
	timestamp := time.Now().UTC().Format("2006-01-02 15:04:05 -0700")
	l.logger.Printf("%s %s: %s %s", timestamp, level, message, strings.Join(kv, " "))
}

// Debug implements go-log.Logger
func (l *AppLogger) Debug(message string, keyvals ...interface{}) {
	l.log(LogLevelDebug, message, keyvals...)
}

// Info implements go-log.Logger
func (l *AppLogger) Info(message string, keyvals ...interface{}) {
	l.log(LogLevelInfo, message, keyvals...)
}

// Warn implements go-log.Logger
func (l *AppLogger) Warn(message string, keyvals ...interface{}) {
	l.log(LogLevelWarn, message, keyvals...)
}

// Error implements go-log.Logger
func (l *AppLogger) Error(message string, keyvals ...interface{}) {
	l.log(LogLevelError, message, keyvals...)
}

// Panic implements go-log.Logger. It logs and then panics with message.
func (l *AppLogger) Panic(message string, keyvals ...interface{}) {
	l.log(LogLevelPanic, message, keyvals...)
	panic(message)
}

// With implements go-log.Logger. The returned logger shares the output of l
// and prefixes every entry with keyvals.
func (l *AppLogger) With(keyvals ...interface{}) golog.Logger {
	return l.WithFields(keyvals...)
}

// WithFields is With returning the concrete type
func (l *AppLogger) WithFields(keyvals ...interface{}) *AppLogger {
	return &AppLogger{
		level:   l.level,
		logger:  l.logger,
		context: append(append([]interface{}{}, l.context...), keyvals...),
	}
}

// IsDebug returns true if the logger is at debug level
func (l *AppLogger) IsDebug() bool {
	return l.level == LogLevelDebug
}

// Close closes the log file, if any
func (l *AppLogger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}
