// Package util provides a structured logger for the application.
package util

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// LogLevel represents logging severity levels.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

func (l LogLevel) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ParseLogLevel converts a string to LogLevel.
func ParseLogLevel(s string) LogLevel {
	switch s {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger provides structured logging on top of zerolog.
type Logger struct {
	mu     *sync.Mutex
	zl     zerolog.Logger
	level  LogLevel
	format string // "json" or "text"
}

// NewLogger creates a new logger writing to stderr.
func NewLogger(level, format string) *Logger {
	l := &Logger{
		mu:     &sync.Mutex{},
		level:  ParseLogLevel(level),
		format: format,
	}
	l.zl = zerolog.New(l.writer(os.Stderr)).Level(l.level.zerolog()).With().Timestamp().Logger()
	return l
}

func (l *Logger) writer(w io.Writer) io.Writer {
	if l.format == "json" {
		return w
	}
	return zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "2006-01-02 15:04:05"}
}

// SetOutput sets the output writer.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zl = l.zl.Output(l.writer(w))
}

// Level returns the minimum level that is written.
func (l *Logger) Level() LogLevel {
	return l.level
}

// DebugEnabled reports whether debug entries are written.
func (l *Logger) DebugEnabled() bool {
	return l.level <= LevelDebug
}

// With returns a new logger with an additional field.
func (l *Logger) With(key string, value interface{}) *Logger {
	return &Logger{
		mu:     l.mu,
		zl:     l.zl.With().Interface(key, value).Logger(),
		level:  l.level,
		format: l.format,
	}
}

// WithFields returns a new logger with multiple additional fields.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{
		mu:     l.mu,
		zl:     l.zl.With().Fields(fields).Logger(),
		level:  l.level,
		format: l.format,
	}
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, args ...interface{}) {
	l.log(LevelDebug, msg, args...)
}

// Info logs at info level.
func (l *Logger) Info(msg string, args ...interface{}) {
	l.log(LevelInfo, msg, args...)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.log(LevelWarn, msg, args...)
}

// Error logs at error level.
func (l *Logger) Error(msg string, args ...interface{}) {
	l.log(LevelError, msg, args...)
}

func (l *Logger) log(level LogLevel, msg string, args ...interface{}) {
	if level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Build fields from varargs (key, value pairs)
	fields := make(map[string]interface{}, len(args)/2)
	for i := 0; i < len(args)-1; i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		// Convert errors to strings to avoid JSON marshal issues
		if err, isErr := args[i+1].(error); isErr && err != nil {
			fields[key] = err.Error()
		} else {
			fields[key] = args[i+1]
		}
	}

	l.zl.WithLevel(level.zerolog()).Fields(fields).Msg(msg)
}

// Default logger instance
var defaultLogger = NewLogger("info", "text")

// SetDefaultLogger sets the default logger.
func SetDefaultLogger(l *Logger) {
	defaultLogger = l
}

// GetDefaultLogger returns the default logger.
func GetDefaultLogger() *Logger {
	return defaultLogger
}

// Package-level convenience functions

func Debug(msg string, args ...interface{}) {
	defaultLogger.Debug(msg, args...)
}

func Info(msg string, args ...interface{}) {
	defaultLogger.Info(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	defaultLogger.Warn(msg, args...)
}

func Error(msg string, args ...interface{}) {
	defaultLogger.Error(msg, args...)
}
