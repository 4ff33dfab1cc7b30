package logging

import (
	"fmt"
	"strings"
)

// LogLevel represents the severity of a log message
type LogLevel string

const (
	// LogLevelDebug is for debug messages
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is for informational messages
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn is for warning messages
	LogLevelWarn LogLevel = "warn"
	// LogLevelError is for error messages
	LogLevelError LogLevel = "error"
	// LogLevelPanic is for panic messages
	LogLevelPanic LogLevel = "panic"
)

var levelRank = map[LogLevel]int{
	LogLevelDebug: 0,
	LogLevelInfo:  1,
	LogLevelWarn:  2,
	LogLevelError: 3,
	LogLevelPanic: 4,
}

// ParseLevel converts a configured level name, defaulting to info when blank
func ParseLevel(s string) (LogLevel, error) {
	if s == "" {
		return LogLevelInfo, nil
	}
	level := LogLevel(strings.ToLower(s))
	if _, ok := levelRank[level]; !ok {
		return "", fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// Config holds logging configuration
type Config struct {
	AppLogPath    string   // Path to application log file, stdout if empty
	AccessLogPath string   // Path to authentication access log, discarded if empty
	Level         LogLevel // Minimum application log level
}

var (
	// App is the global application logger
	App *AppLogger
	// Access is the global authentication access logger
	Access AccessLogger
)

func init() {
	var err error

	App, err = NewAppLogger("", LogLevelInfo)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize default app logger: %v", err))
	}

	Access, err = NewAccessLogger("")
	if err != nil {
		panic(fmt.Sprintf("failed to initialize default access logger: %v", err))
	}
}

// Initialize replaces the global loggers
func Initialize(cfg Config) error {
	level := cfg.Level
	if level == "" {
		level = LogLevelInfo
	}

	newAccess, err := NewAccessLogger(cfg.AccessLogPath)
	if err != nil {
		return fmt.Errorf("failed to initialize access logger: %w", err)
	}

	newApp, err := NewAppLogger(cfg.AppLogPath, level)
	if err != nil {
		return fmt.Errorf("failed to initialize app logger: %w", err)
	}

	Access = newAccess
	App = newApp
	return nil
}

// formatValue formats a value for logfmt, quoting if necessary
func formatValue(v interface{}) string {
	s := fmt.Sprintf("%v", v)
	if s == "" || strings.ContainsAny(s, " =\"") {
		s = strings.ReplaceAll(s, "\"", "\\\"")
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}

// formatPairs renders key/value pairs as logfmt; a trailing odd key is dropped
func formatPairs(keyvals []interface{}) []string {
	var parts []string
	for i := 0; i+1 < len(keyvals); i += 2 {
		parts = append(parts, fmt.Sprintf("%s=%s", toString(keyvals[i]), formatValue(toString(keyvals[i+1]))))
	}
	return parts
}

func toString(v interface{}) string {
	if v == nil {
		return ""
	}
	// Collapse newlines, tabs and runs of spaces
	return strings.Join(strings.Fields(fmt.Sprintf("%v", v)), " ")
}
