// Package logging builds the zap logger shared by the CLI and the ingest
// pipeline.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/japaniel/jmconj/pkg/config"
)

// ParseLevel maps debug, info, warn and error to zap levels. Anything else is info.
func ParseLevel(s string) zapcore.Level {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return zapcore.InfoLevel
	}
	return l
}

// New creates a JSON production logger, or a console logger when
// cfg.Development is set. A nil cfg yields a no-op logger.
func New(cfg *config.LogConfig) *zap.Logger {
	if cfg == nil {
		return zap.NewNop()
	}
	level := ParseLevel(cfg.Level)

	zapConfig := zap.NewProductionConfig()
	zapConfig.EncoderConfig.TimeKey = "timestamp"
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.EncoderConfig.StacktraceKey = "stacktrace"
	if cfg.Development {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	// Logs go to stderr so command output on stdout stays clean.
	zapConfig.OutputPaths = []string{"stderr"}

	logger, err := zapConfig.Build()
	if err != nil {
		// Fallback to a basic logger if config fails
		return zap.NewExample()
	}
	return logger
}
