package utils

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"
)

// Level orders log severities; messages below the logger's level are dropped.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps "debug", "info", "warn" and "error" to a Level.
// Anything else yields LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	}
	return LevelInfo
}

// Logger provides leveled, timestamped logging throughout the application.
type Logger struct {
	level Level
	out   *log.Logger
	err   *log.Logger
}

// NewLoggerTo creates a Logger with explicit writers and minimum level.
func NewLoggerTo(out, errOut io.Writer, level Level) *Logger {
	return &Logger{
		level: level,
		out:   log.New(out, "", 0),
		err:   log.New(errOut, "", 0),
	}
}

// Discard returns a Logger that drops everything. Handy in tests.
func Discard() *Logger {
	return NewLoggerTo(io.Discard, io.Discard, LevelError+1)
}

func (l *Logger) timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func (l *Logger) emit(dst *log.Logger, lvl Level, tag, format string, args ...any) {
	if lvl < l.level {
		return
	}
	dst.Printf("[%s] %s %s", l.timestamp(), tag, fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...any) {
	l.emit(l.out, LevelDebug, "\033[36mDEBUG\033[0m", format, args...)
}

func (l *Logger) Info(format string, args ...any) {
	l.emit(l.out, LevelInfo, "\033[32mINFO\033[0m ", format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.emit(l.out, LevelWarn, "\033[33mWARN\033[0m ", format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.emit(l.err, LevelError, "\033[31mERROR\033[0m", format, args...)
}
