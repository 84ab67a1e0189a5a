package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel defines the severity of the log entry.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String makes LogLevel satisfy the fmt.Stringer interface.
func (l LogLevel) String() string {
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
		return "UNKNOWN"
	}
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLevel converts a flag value such as "debug" or "WARN" into a LogLevel.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

var (
	mu            sync.RWMutex
	defaultLogger = zap.NewNop()
	closeOutput   func() error
)

// InitForTUI routes all log output to a JSON file because the terminal is
// owned by the dashboard while it runs. An empty path discards logs.
func InitForTUI(level LogLevel, path string) error {
	if path == "" {
		setCore(zapcore.NewNopCore(), nil)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", path, err)
	}
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	setCore(zapcore.NewCore(enc, zapcore.AddSync(f), level.zapLevel()), f.Close)
	return nil
}

// InitForCLI writes human readable log lines to output.
func InitForCLI(level LogLevel, output io.Writer) {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	enc := zapcore.NewConsoleEncoder(cfg)
	setCore(zapcore.NewCore(enc, zapcore.AddSync(output), level.zapLevel()), nil)
}

// UseCore installs an arbitrary zap core. Tests use it with an observer.
func UseCore(core zapcore.Core) {
	setCore(core, nil)
}

func setCore(core zapcore.Core, closer func() error) {
	mu.Lock()
	defer mu.Unlock()
	if closeOutput != nil {
		_ = closeOutput()
	}
	defaultLogger = zap.New(core)
	closeOutput = closer
}

// Sync flushes buffered output and releases the log file, if any.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	_ = defaultLogger.Sync()
	if closeOutput != nil {
		_ = closeOutput()
		closeOutput = nil
	}
}

func logInternal(level LogLevel, subsystem string, err error, messageFmt string, args ...interface{}) {
	msg := messageFmt
	if len(args) > 0 {
		msg = fmt.Sprintf(messageFmt, args...)
	}

	mu.RLock()
	logger := defaultLogger
	mu.RUnlock()

	fields := []zap.Field{zap.String("subsystem", subsystem)}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	if ce := logger.Check(level.zapLevel(), msg); ce != nil {
		ce.Write(fields...)
	}
}

// Debug logs a debug message.
func Debug(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelDebug, subsystem, nil, messageFmt, args...)
}

// Info logs an informational message.
func Info(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelInfo, subsystem, nil, messageFmt, args...)
}

// Warn logs a warning message.
func Warn(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelWarn, subsystem, nil, messageFmt, args...)
}

// Error logs an error message.
func Error(subsystem string, err error, messageFmt string, args ...interface{}) {
	logInternal(LevelError, subsystem, err, messageFmt, args...)
}
