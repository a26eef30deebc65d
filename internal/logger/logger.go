package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps the zap logger used across the runner, API and CLI.
type Logger struct {
	*zap.Logger
}

// NewLogger creates a production logger at info level.
func NewLogger() (*Logger, error) {
	return NewLoggerWithLevel("info")
}

// NewLoggerWithLevel creates a production logger at the given level ("debug", "info", "warn", "error").
// An unknown level falls back to info.
func NewLoggerWithLevel(level string) (*Logger, error) {
	config := zap.NewProductionConfig()

	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	config.Level = zap.NewAtomicLevelAt(lvl)

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{
		Logger: zapLogger,
	}, nil
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Named returns a child logger tagged with a component name.
func (l *Logger) Named(name string) *Logger {
	if l == nil || l.Logger == nil {
		return NewNopLogger()
	}

	return &Logger{Logger: l.Logger.Named(name)}
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	if l.Logger != nil {
		return l.Logger.Sync()
	}

	return nil
}
