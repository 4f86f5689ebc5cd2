package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// Logger is the process-wide structured logger. It is a no-op logger until Init is called,
// which keeps packages usable from tests without setup.
var Logger = zerolog.Nop()

type requestIDKey struct{}

// Init initializes the global logger for the given service
func Init(serviceName string, isDevelopment bool) {
	var output io.Writer = os.Stdout

	if isDevelopment {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		}
	}

	InitWithWriter(serviceName, output)
}

// InitWithWriter initializes the global logger writing to w
func InitWithWriter(serviceName string, w io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	Logger = zerolog.New(w).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()

	log.Logger = Logger
}

// ContextWithRequestID stores the request id so that WithContext can attach it
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// WithContext returns a logger with trace and request information from context
func WithContext(ctx context.Context) *zerolog.Logger {
	lc := Logger.With()

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		lc = lc.
			Str("trace_id", span.SpanContext().TraceID().String()).
			Str("span_id", span.SpanContext().SpanID().String())
	}
	if requestID, ok := ctx.Value(requestIDKey{}).(string); ok && requestID != "" {
		lc = lc.Str("request_id", requestID)
	}

	l := lc.Logger()
	return &l
}

func Info(ctx context.Context) *zerolog.Event {
	return WithContext(ctx).Info()
}

func Error(ctx context.Context) *zerolog.Event {
	return WithContext(ctx).Error()
}

func Debug(ctx context.Context) *zerolog.Event {
	return WithContext(ctx).Debug()
}

func Warn(ctx context.Context) *zerolog.Event {
	return WithContext(ctx).Warn()
}

// SetLevel sets the global log level; unknown levels fall back to info
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
