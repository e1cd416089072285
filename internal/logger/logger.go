// Package logger provides the application-wide zap logger. Core packages
// take an injected *zap.Logger; this package owns construction and the
// convenience helpers used by command wiring.
package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger = zap.NewNop()

// Initialize builds the global logger. level accepts debug/info/warn/error
// (case-insensitive); anything else falls back to info. Output is structured
// JSON on stderr so stdout stays clean for commands that emit data.
func Initialize(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	built, err := cfg.Build()
	if err != nil {
		// Fall back to a bare production logger rather than running silent.
		built = zap.Must(zap.NewProduction())
	}
	log = built
	return log
}

// Get returns the global logger.
func Get() *zap.Logger {
	return log
}

// Sync flushes buffered log entries.
func Sync() {
	_ = log.Sync()
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info", "":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Infof logs a formatted message at info level.
func Infof(format string, args ...any) {
	log.Sugar().Infof(format, args...)
}

// Warnf logs a formatted message at warn level.
func Warnf(format string, args ...any) {
	log.Sugar().Warnf(format, args...)
}

// Errorf logs a formatted message at error level.
func Errorf(format string, args ...any) {
	log.Sugar().Errorf(format, args...)
}

// Fatalf logs a formatted message at error level and exits.
func Fatalf(format string, args ...any) {
	log.Sugar().Errorf(format, args...)
	_ = log.Sync()
	fmt.Fprintln(os.Stderr, "fatal error, exiting")
	os.Exit(1)
}
