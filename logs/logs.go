// Package logs carries a zap logger on the context so request handlers can
// log with request scoped fields.
package logs

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	Development = "development"
	Production  = "production"
)

// Setup builds the process logger for the given environment and installs it
// as the zap global logger, which Get falls back to. Production logs are
// JSON, anything else uses the human readable development encoder.
func Setup(environment string) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)

	switch environment {
	case Production:
		logger, err = zap.NewProduction()
	default:
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}

	zap.ReplaceGlobals(logger)
	return logger, nil
}

type key struct{}

// Get returns the logger on ctx, or the process logger if there is none.
func Get(ctx context.Context) *zap.Logger {
	if logger, _ := ctx.Value(key{}).(*zap.Logger); logger != nil {
		return logger
	}
	return zap.L()
}

// Into returns a copy of ctx carrying logger.
func Into(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, key{}, logger)
}

// With returns a copy of ctx whose logger includes fields.
func With(ctx context.Context, fields ...zapcore.Field) context.Context {
	return Into(ctx, Get(ctx).With(fields...))
}

func Debug(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Debug(msg, fields...)
}

func Info(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Info(msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Warn(msg, fields...)
}

func Error(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Error(msg, fields...)
}
