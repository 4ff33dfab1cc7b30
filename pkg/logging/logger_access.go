package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// AccessLogger records authentication attempts
type AccessLogger interface {
	// LogAuth logs one authentication operation
	LogAuth(operation string, user string, status string, details ...interface{})
}

type accessLogger struct {
	logger *log.Logger
}

// NewAccessLogger creates an access logger writing to logPath, or discarding when empty
func NewAccessLogger(logPath string) (AccessLogger, error) {
	var writer io.Writer

	if logPath == "" {
		writer = io.Discard
	} else {
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return nil, fmt.Errorf("creating access log directory: %w", err)
		}
		f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening access log file: %w", err)
		}
		writer = f
	}

	return newAccessLogger(writer), nil
}

func newAccessLogger(w io.Writer) *accessLogger {
	return &accessLogger{logger: log.New(w, "", 0)}
}

func (l *accessLogger) LogAuth(operation string, user string, status string, details ...interface{}) {
	parts := []string{fmt.Sprintf("op=%s", formatValue(operation))}
	if user != "" {
		parts = append(parts, fmt.Sprintf("user=%s", formatValue(user)))
	}
	parts = append(parts, fmt.Sprintf("status=%s", formatValue(status)))
	parts = append(parts, formatPairs(details)...)

	timestamp := time.Now().UTC().Format("2006-01-02 15:04:05 -0700")
	l.logger.Printf("%s %s", timestamp, strings.Join(parts, " "))
}
