// Package logger provides a global, Sugared Zap logger that carries
// per-request fields through context.Context. Every entry emitted with a
// context that holds an active OpenTelemetry span is enriched with the
// span's trace and span identifiers so logs can be correlated with traces.
// When telemetry is initialised first, entries are also forwarded to the
// OpenTelemetry log provider through the otelzap bridge.
package logger

import (
	"context"
	"os"
	"sync"

	"github.com/Vinamra-Agarwal/CareChain/internal/pkg/telemetry"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const instrumentationName = "github.com/Vinamra-Agarwal/CareChain"

// ctxKeyType is the private type used to store a derived logger in a context.
type ctxKeyType struct{}

var (
	// ctxKey is the context key under which Derive stores its logger.
	ctxKey = ctxKeyType{}

	// baseLogger is the process-wide logger. It discards everything until
	// Init replaces it.
	baseLogger = zap.NewNop().Sugar()

	// level is the minimum level of the stdout output. SetLevel changes it
	// after Init.
	level = zap.NewAtomicLevel()

	// initBaseLoggerOnce guards the one-time setup of baseLogger.
	initBaseLoggerOnce sync.Once
)

type config struct {
	level string
}

// Option configures the logger before initialization.
type Option func(*config)

// WithLevel sets the minimum log level ("debug", "info", "warn", "error",
// "panic", "fatal").
func WithLevel(l string) Option {
	return func(c *config) {
		c.level = l
	}
}

// Init configures the global logger to emit JSON to stdout, at "info" unless
// WithLevel says otherwise. If telemetry.LoggerProvider returns a provider,
// entries are also bridged to it.
//
// Calling Init more than once has no effect after the first successful call.
// An invalid level returns an error and leaves the no-op logger in place, so
// a later call may still succeed.
func Init(opts ...Option) error {
	cfg := config{level: "info"}
	for _, opt := range opts {
		opt(&cfg)
	}

	lvl, err := zapcore.ParseLevel(cfg.level)
	if err != nil {
		return err
	}

	initBaseLoggerOnce.Do(func() {
		level.SetLevel(lvl)
		baseLogger = zap.New(newCore(zapcore.AddSync(os.Stdout), telemetry.LoggerProvider())).Sugar()
	})

	return nil
}

// newCore writes JSON to w and, when lp is set, tees every entry into the
// OpenTelemetry log pipeline.
func newCore(w zapcore.WriteSyncer, lp *sdklog.LoggerProvider) zapcore.Core {
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), w, level),
	}

	if lp != nil {
		cores = append(cores, otelzap.NewCore(instrumentationName, otelzap.WithLoggerProvider(lp)))
	}

	return zapcore.NewTee(cores...)
}

// SetLevel changes the minimum level of the stdout output at runtime.
func SetLevel(l string) error {
	lvl, err := zapcore.ParseLevel(l)
	if err != nil {
		return err
	}

	level.SetLevel(lvl)
	return nil
}

// Level returns the current minimum level of the stdout output.
func Level() zapcore.Level {
	return level.Level()
}

// Sync flushes any buffered log entries. It should be called on application
// shutdown to ensure all logs are written out.
func Sync() error {
	return baseLogger.Sync()
}

// deriveFromCtx returns the logger stored in ctx (or the base logger when
// none is present) extended with the trace identifiers of the active span
// and the given key/value pairs.
func deriveFromCtx(ctx context.Context, keysAndValues ...any) *zap.SugaredLogger {
	l, ok := ctx.Value(ctxKey).(*zap.SugaredLogger)
	if !ok || l == nil {
		l = baseLogger
	}

	if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
		l = l.With(
			"trace_id", spanCtx.TraceID().String(),
			"span_id", spanCtx.SpanID().String(),
		)
	}

	if len(keysAndValues) > 0 {
		l = l.With(keysAndValues...)
	}

	return l
}

// Derive returns a copy of ctx carrying a logger annotated with the given
// key/value pairs. Entries logged with the returned context include them.
func Derive(ctx context.Context, keysAndValues ...any) context.Context {
	l, ok := ctx.Value(ctxKey).(*zap.SugaredLogger)
	if !ok || l == nil {
		l = baseLogger
	}

	return context.WithValue(ctx, ctxKey, l.With(keysAndValues...))
}

// log writes a single entry at lvl using the logger derived from ctx.
func log(ctx context.Context, lvl zapcore.Level, msg string, keysAndValues ...any) {
	deriveFromCtx(ctx).Logw(lvl, msg, keysAndValues...)
}

// Debug logs a debug-level message with optional key/value context.
func Debug(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.DebugLevel, msg, keysAndValues...)
}

// Info logs an info-level message with optional key/value context.
func Info(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.InfoLevel, msg, keysAndValues...)
}

// Warn logs a warn-level message with optional key/value context.
func Warn(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.WarnLevel, msg, keysAndValues...)
}

// Error logs an error-level message with optional key/value context.
func Error(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.ErrorLevel, msg, keysAndValues...)
}

// Fatal logs a fatal-level message (and then exits) with optional key/value context.
func Fatal(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.FatalLevel, msg, keysAndValues...)
}
