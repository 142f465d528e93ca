// Package logger provides the structured, levelled application logger built
// on zap.
//
// WithCtx returns the request-scoped logger injected by the HTTP middleware,
// so every line written from a handler or service carries the request id:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("franchise created", zap.String("franchise_id", id))
package logger

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/johssalinas/backend-accenture/config"
)

// L is the process-wide base logger.
var L *zap.Logger

func init() {
	l, err := New(config.AppEnv(), config.LogLevel())
	if err != nil {
		l = zap.NewNop()
	}
	L = l
}

// New builds a logger for env. Production gets a JSON encoder with ISO8601
// timestamps; anything else gets the coloured console encoder.
func New(env, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("logger: parse level %q: %w", level, err)
	}

	var cfg zap.Config
	switch env {
	case "production", "prod":
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg.Build()
}

// Init replaces the base logger. Call once at boot, before serving.
func Init(env, level string) error {
	l, err := New(env, level)
	if err != nil {
		return err
	}
	L = l
	zap.ReplaceGlobals(l)
	return nil
}

// Sync flushes any buffered entries of the base logger.
func Sync() {
	_ = L.Sync()
}

type ctxKey struct{}

// WithCtx returns the logger stored in ctx by InjectLogger, or the base
// logger when none is present.
func WithCtx(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return L
	}
	if log, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a request-scoped logger in ctx.
func InjectLogger(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, fields ...zap.Field) { L.Debug(msg, fields...) }

func Info(msg string, fields ...zap.Field) { L.Info(msg, fields...) }

func Warn(msg string, fields ...zap.Field) { L.Warn(msg, fields...) }

func Error(msg string, fields ...zap.Field) { L.Error(msg, fields...) }
