package observe

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a minimal structured logging interface used for diagnostics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: trace correlation fields are taken from ctx when present.
// - Errors: logging must be best-effort and must not panic.
type Logger interface {
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)
	Debug(ctx context.Context, msg string, fields ...Field)
	With(fields ...Field) Logger
}

// Field represents a structured log field.
type Field struct {
	Key   string
	Value any
}

// ValidateLogLevel returns ErrInvalidLogLevel unless s is one of
// ValidLogLevels, ignoring case.
func ValidateLogLevel(s string) error {
	if !slices.Contains(ValidLogLevels, strings.ToLower(s)) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, s)
	}
	return nil
}

// ParseLogLevel parses a string log level. Unknown values map to info; call
// ValidateLogLevel first to reject them.
func ParseLogLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// NewZap builds the base zap logger writing JSON (or console when format is
// "console") to w at the given level.
func NewZap(level, format string, w io.Writer) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if format == "console" {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), ParseLogLevel(level))
	return zap.New(core)
}

// NewLogger creates a JSON logger on stderr with the given level.
func NewLogger(level string) Logger {
	return NewLoggerWithWriter(level, "json", os.Stderr)
}

// NewLoggerWithWriter creates a logger with a custom writer and format.
func NewLoggerWithWriter(level, format string, w io.Writer) Logger {
	return FromZap(NewZap(level, format, w))
}

// FromZap adapts an existing zap logger.
func FromZap(z *zap.Logger) Logger {
	if z == nil {
		return NopLogger()
	}
	return &zapLogger{zap: z}
}

// NopLogger returns a logger that discards everything.
func NopLogger() Logger {
	return &zapLogger{zap: zap.NewNop()}
}

// zapLogger implements Logger on top of zap.
type zapLogger struct {
	zap *zap.Logger
}

func (l *zapLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.zap.Info(msg, l.fields(ctx, fields)...)
}

func (l *zapLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.zap.Warn(msg, l.fields(ctx, fields)...)
}

func (l *zapLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.zap.Error(msg, l.fields(ctx, fields)...)
}

func (l *zapLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.zap.Debug(msg, l.fields(ctx, fields)...)
}

// With returns a child logger carrying fields on every entry.
func (l *zapLogger) With(fields ...Field) Logger {
	return &zapLogger{zap: l.zap.With(toZap(fields)...)}
}

func (l *zapLogger) fields(ctx context.Context, fields []Field) []zap.Field {
	out := contextFields(ctx)
	return append(out, toZap(fields)...)
}

// contextFields extracts trace correlation from ctx.
func contextFields(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	return []zap.Field{
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	}
}

func toZap(fields []Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		if isRedactedField(f.Key) {
			out = append(out, zap.String(f.Key, "[REDACTED]"))
			continue
		}
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}

// isRedactedField returns true if the field should be redacted.
func isRedactedField(key string) bool {
	return slices.ContainsFunc(RedactedFields, func(k string) bool {
		return strings.EqualFold(k, key)
	})
}

// Ensure zapLogger implements Logger
var _ Logger = (*zapLogger)(nil)
