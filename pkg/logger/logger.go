package logger

import (
	"context"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey string

// TraceIDKey is the context key the trace middleware stores the request id under.
const TraceIDKey ctxKey = "trace_id"

var (
	mu    sync.RWMutex
	sugar = zap.NewNop().Sugar()
)

// Init builds the process logger. Anything other than "production" gets the
// colored console encoder at debug level.
func Init(env string) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "time"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		l = zap.NewExample()
	}

	mu.Lock()
	sugar = l.Sugar()
	mu.Unlock()
}

func get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func Debug(msg string, keysAndValues ...any) { get().Debugw(msg, keysAndValues...) }
func Info(msg string, keysAndValues ...any)  { get().Infow(msg, keysAndValues...) }
func Warn(msg string, keysAndValues ...any)  { get().Warnw(msg, keysAndValues...) }
func Error(msg string, keysAndValues ...any) { get().Errorw(msg, keysAndValues...) }

// Fatal logs and exits the process.
func Fatal(msg string, keysAndValues ...any) {
	get().Errorw(msg, keysAndValues...)
	_ = Sync()
	os.Exit(1)
}

// WithContext returns a child logger carrying the request trace id, if any.
func WithContext(ctx context.Context) *zap.SugaredLogger {
	if tid := TraceID(ctx); tid != "" {
		return get().With("trace_id", tid)
	}
	return get()
}

// TraceID reads the trace id set by the trace middleware.
func TraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(TraceIDKey).(string); ok {
		return v
	}
	return ""
}

func Sync() error {
	return get().Sync()
}
