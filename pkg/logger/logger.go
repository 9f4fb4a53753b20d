package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"
)

// Level represents log level
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Logger provides structured logging
type Logger struct {
	*log.Logger
	debug bool
}

// New creates a new logger writing to stdout
func New() *Logger {
	return NewWithWriter(os.Stdout, false)
}

// NewWithWriter creates a logger writing to w. Debug entries are dropped unless debug is set.
func NewWithWriter(w io.Writer, debug bool) *Logger {
	return &Logger{
		Logger: log.New(w, "", 0),
		debug:  debug,
	}
}

// Discard returns a logger that drops every entry.
func Discard() *Logger {
	return NewWithWriter(io.Discard, false)
}

// Log writes a structured log entry
func (l *Logger) Log(level Level, message string, fields ...Field) {
	if level == LevelDebug && !l.debug {
		return
	}
	timestamp := time.Now().Format(time.RFC3339)
	entry := formatLogEntry(timestamp, string(level), message, fields...)
	l.Logger.Println(entry)
}

// Debug logs a debug message
func (l *Logger) Debug(message string, fields ...Field) {
	l.Log(LevelDebug, message, fields...)
}

// Info logs an info message
func (l *Logger) Info(message string, fields ...Field) {
	l.Log(LevelInfo, message, fields...)
}

// Warn logs a warning message
func (l *Logger) Warn(message string, fields ...Field) {
	l.Log(LevelWarn, message, fields...)
}

// Error logs an error message
func (l *Logger) Error(message string, fields ...Field) {
	l.Log(LevelError, message, fields...)
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value string
}

// F creates a Field
func F(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Err creates an "error" Field from err.
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: ""}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Num creates a Field holding a number rendered with %g.
func Num(key string, value float64) Field {
	return Field{Key: key, Value: fmt.Sprintf("%g", value)}
}

// Int creates a Field holding an integer.
func Int(key string, value int64) Field {
	return Field{Key: key, Value: strconv.FormatInt(value, 10)}
}

func formatLogEntry(timestamp, level, message string, fields ...Field) string {
	entry := timestamp + " [" + level + "] " + message
	if len(fields) > 0 {
		entry += " |"
		for _, field := range fields {
			entry += " " + field.Key + "=" + field.Value
		}
	}
	return entry
}
