package logging

import (
	"fmt"
	"log"
	"os"
)

// Level controls logging verbosity.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

// ParseLevel maps a LOG_LEVEL value onto a Level. Unknown values fall
// back to info.
func ParseLevel(s string) Level {
	switch s {
	case "ERROR":
		return LevelError
	case "WARN":
		return LevelWarn
	case "DEBUG":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// Logger writes leveled, component-prefixed log lines, e.g.
// "[AnalysisService] run abc completed". Verbosity comes from the
// LOG_LEVEL environment variable.
type Logger struct {
	level     Level
	component string
}

// New creates a logger for one component, reading LOG_LEVEL.
func New(component string) *Logger {
	return NewWithLevel(component, ParseLevel(os.Getenv("LOG_LEVEL")))
}

// NewWithLevel creates a logger with an explicit verbosity level.
func NewWithLevel(component string, level Level) *Logger {
	return &Logger{level: level, component: component}
}

// Errorf logs an error-level message.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logf(LevelError, "ERROR: ", format, args...)
}

// Warnf logs a warning-level message.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logf(LevelWarn, "WARN: ", format, args...)
}

// Infof logs an info-level message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logf(LevelInfo, "", format, args...)
}

// Debugf logs a debug-level message.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logf(LevelDebug, "DEBUG: ", format, args...)
}

func (l *Logger) logf(level Level, tag, format string, args ...interface{}) {
	if l.level < level {
		return
	}
	log.Printf("[%s] %s%s", l.component, tag, fmt.Sprintf(format, args...))
}
