// Package logging provides structured logging for CUP.
package logging

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level represents a log level.
type Level int

const (
	// LevelDebug is for verbose debugging information.
	LevelDebug Level = iota
	// LevelInfo is for general informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
	// LevelNone disables all logging.
	LevelNone
)

// String returns the string representation of a log level.
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
		return "NONE"
	}
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	case LevelNone:
		return zapcore.FatalLevel + 1
	default:
		return zapcore.InfoLevel
	}
}

// Logger wraps a zap.Logger behind the same prefix/level/output-swapping
// API the rest of this codebase already calls, so the core gains
// structured, leveled logging without churning every call site.
type Logger struct {
	mu     sync.Mutex
	level  Level
	output io.Writer
	prefix string
	atom   zap.AtomicLevel
	zl     *zap.Logger
}

// defaultLogger is the package-level logger.
var defaultLogger = New(LevelInfo, os.Stderr)

// New creates a new Logger writing to output at the given level.
func New(level Level, output io.Writer) *Logger {
	l := &Logger{level: level, output: output, atom: zap.NewAtomicLevelAt(level.zapLevel())}
	l.rebuild()
	return l
}

// NewFileLogger builds a Logger that writes JSON-encoded entries to a
// size- and age-rotated file via lumberjack, for long-running sessions
// where stderr isn't durable.
func NewFileLogger(level Level, path string, maxSizeMB, maxBackups, maxAgeDays int) *Logger {
	return New(level, &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	})
}

func (l *Logger) rebuild() {
	out := l.output
	colorize := false
	if f, ok := out.(*os.File); ok {
		colorize = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		if colorize {
			out = colorable.NewColorable(f)
		}
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = "t"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if colorize {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	encoder := zapcore.NewConsoleEncoder(encCfg)

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), l.atom)
	zl := zap.New(core)
	if l.prefix != "" {
		zl = zl.Named(l.prefix)
	}
	l.zl = zl
}

// isTerminal reports whether w is a terminal file descriptor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetLevel sets the log level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.atom.SetLevel(level.zapLevel())
}

// SetOutput sets the output writer.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
	l.rebuild()
}

// SetPrefix sets the log prefix (rendered as the zap logger name).
func (l *Logger) SetPrefix(prefix string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prefix = prefix
	l.rebuild()
}

// WithPrefix returns a new logger scoped under the given prefix, sharing
// this logger's level and output.
func (l *Logger) WithPrefix(prefix string) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	child := &Logger{level: l.level, output: l.output, prefix: prefix, atom: l.atom}
	child.rebuild()
	return child
}

func (l *Logger) Debug(format string, args ...any) { l.zl.Sugar().Debugf(format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.zl.Sugar().Infof(format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.zl.Sugar().Warnf(format, args...) }
func (l *Logger) Error(format string, args ...any) { l.zl.Sugar().Errorf(format, args...) }

// Sync flushes any buffered log entries; call before process exit.
func (l *Logger) Sync() error { return l.zl.Sync() }

// Package-level functions that use the default logger.

func SetLevel(level Level)  { defaultLogger.SetLevel(level) }
func SetOutput(w io.Writer) { defaultLogger.SetOutput(w) }

func Debug(format string, args ...any) { defaultLogger.Debug(format, args...) }
func Info(format string, args ...any)  { defaultLogger.Info(format, args...) }
func Warn(format string, args ...any)  { defaultLogger.Warn(format, args...) }
func Error(format string, args ...any) { defaultLogger.Error(format, args...) }

// WithPrefix returns a new logger with the given prefix.
func WithPrefix(prefix string) *Logger {
	return defaultLogger.WithPrefix(prefix)
}

// ParseLevel parses a log level string.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "none", "off":
		return LevelNone
	default:
		return LevelInfo
	}
}

// ToolLogger is a specialized logger for tool/action operations.
type ToolLogger struct {
	*Logger
	toolName string
}

// NewToolLogger creates a logger for a specific tool.
func NewToolLogger(toolName string) *ToolLogger {
	return &ToolLogger{
		Logger:   defaultLogger.WithPrefix(toolName),
		toolName: toolName,
	}
}

// Start logs the start of a tool operation.
func (t *ToolLogger) Start(operation string, args ...any) {
	t.Debug("→ %s(%s)", operation, formatArgs(args))
}

// Success logs a successful tool operation.
func (t *ToolLogger) Success(operation string, result any) {
	t.Debug("✓ %s → %v", operation, result)
}

// Failure logs a failed tool operation.
func (t *ToolLogger) Failure(operation string, err error) {
	t.Error("✗ %s → %v", operation, err)
}

func formatArgs(args []any) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = fmt.Sprintf("%v", arg)
	}
	return strings.Join(parts, ", ")
}

// LogPlatformInfo logs platform information at startup.
func LogPlatformInfo() {
	Info("Platform: %s/%s", runtime.GOOS, runtime.GOARCH)
}
