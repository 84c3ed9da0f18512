package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go-media-library/internal/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Logger writes leveled JSON log entries to stdout and, when configured,
// to a size-rotated log file.
type Logger struct {
	name   string
	level  Level
	writer io.Writer
}

type logEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Service   string `json:"service,omitempty"`
	Message   string `json:"message"`
}

func New(name string, cfg config.LogConfig) *Logger {
	writers := []io.Writer{os.Stdout}

	if cfg.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		})
	}

	return &Logger{
		name:   name,
		level:  ParseLevel(cfg.Level),
		writer: io.MultiWriter(writers...),
	}
}

// Named returns a logger that tags entries with a sub-service name.
func (l *Logger) Named(name string) *Logger {
	child := *l
	if l.name != "" {
		child.name = l.name + "." + name
	} else {
		child.name = name
	}
	return &child
}

func (l *Logger) Debug(msg string, args ...any) { l.write(LevelDebug, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.write(LevelInfo, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.write(LevelWarn, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.write(LevelError, msg, args...) }

func (l *Logger) write(level Level, msg string, args ...any) {
	if level < l.level {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	entry := logEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level.String(),
		Service:   l.name,
		Message:   msg,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	fmt.Fprintln(l.writer, string(data))
}

// Discard returns a logger that drops everything; used by tests.
func Discard() *Logger {
	return &Logger{level: LevelError + 1, writer: io.Discard}
}
