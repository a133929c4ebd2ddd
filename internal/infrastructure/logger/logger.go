package logger

import (
	"context"
	"time"

	usecasecontract "github.com/CHANDU-143-ashok/mangocropconnect/internal/usecase/contract"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ContextKey string

const RequestIDKey ContextKey = "request_id"

// ZapLogger adapts a zap logger to the application logging interface.
type ZapLogger struct {
	base  *zap.Logger
	sugar *zap.SugaredLogger
}

var _ usecasecontract.IAppLogger = (*ZapLogger)(nil)

var buildLogger = func(cfg zap.Config) (*zap.Logger, error) {
	return cfg.Build(zap.AddCallerSkip(1))
}

// NewZapLogger builds a JSON production logger, or a console logger when env is development.
func NewZapLogger(env string) (*ZapLogger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if env == "development" {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	log, err := buildLogger(config)
	if err != nil {
		return nil, err
	}
	return &ZapLogger{base: log, sugar: log.Sugar()}, nil
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *ZapLogger {
	log := zap.NewNop()
	return &ZapLogger{base: log, sugar: log.Sugar()}
}

// Zap returns the underlying structured logger.
func (l *ZapLogger) Zap() *zap.Logger {
	return l.base
}

// WithContext adds the request id carried by ctx, if any.
func (l *ZapLogger) WithContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return l.base
	}
	if reqID, ok := ctx.Value(RequestIDKey).(string); ok && reqID != "" {
		return l.base.With(zap.String("request_id", reqID))
	}
	return l.base
}

// LogRequest logs an HTTP request details
func (l *ZapLogger) LogRequest(ctx context.Context, method, path string, status int, latency time.Duration, clientIP string) {
	l.WithContext(ctx).Info("HTTP Request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("latency", latency),
		zap.String("client_ip", clientIP),
	)
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	return l.base.Sync()
}

func (l *ZapLogger) Debugf(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

func (l *ZapLogger) Infof(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

func (l *ZapLogger) Warnf(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Warningf is an alias of Warnf.
func (l *ZapLogger) Warningf(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

func (l *ZapLogger) Errorf(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Fatalf logs a fatal message and exits.
func (l *ZapLogger) Fatalf(format string, args ...interface{}) {
	l.sugar.Fatalf(format, args...)
}
