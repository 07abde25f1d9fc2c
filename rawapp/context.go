package rawapp

import (
	"context"
	"time"

	"github.com/advdv/rawhttp"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ctxKey is the key type for context values.
type ctxKey int

const (
	ctxKeyRequestDep ctxKey = iota
)

// requestDep holds request-scoped dependencies available via context.
// App-scoped dependencies (env, route table) are accessed via Runtime instead.
type requestDep struct {
	logger *zap.Logger
}

// withRequestDep injects dependencies into the handler context.
func withRequestDep(d *requestDep) rawhttp.Middleware {
	return func(next rawhttp.Handler) rawhttp.Handler {
		return rawhttp.HandlerFunc(func(ctx context.Context, w rawhttp.ResponseWriter, r *rawhttp.Request) error {
			return next.ServeRaw(context.WithValue(ctx, ctxKeyRequestDep, d), w, r)
		})
	}
}

// withAccessLog logs one line per routed request once the handler returns.
func withAccessLog() rawhttp.Middleware {
	return func(next rawhttp.Handler) rawhttp.Handler {
		return rawhttp.HandlerFunc(func(ctx context.Context, w rawhttp.ResponseWriter, r *rawhttp.Request) error {
			start := time.Now()
			err := next.ServeRaw(ctx, w, r)

			fields := []zap.Field{
				zap.String("method", r.Method()),
				zap.String("target", r.Target()),
				zap.Int("status", w.Status()),
				zap.Int("body_size", len(r.Body())),
				zap.Duration("duration", time.Since(start)),
			}
			if err != nil {
				fields = append(fields, zap.Error(err))
			}

			Log(ctx).Info("request", fields...)
			return err
		})
	}
}

func requestDepFromContext(ctx context.Context) *requestDep {
	d, ok := ctx.Value(ctxKeyRequestDep).(*requestDep)
	if !ok {
		panic("rawapp: requestDep not found in context; is the middleware configured?")
	}
	return d
}

// Log returns a trace-correlated zap logger from the context.
func Log(ctx context.Context) *zap.Logger {
	d := requestDepFromContext(ctx)
	return d.logger.With(traceFields(ctx)...)
}

// Span returns the current trace span from the context.
func Span(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}

// traceFields extracts trace_id and span_id from the context for log correlation.
func traceFields(ctx context.Context) []zap.Field {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return nil
	}
	sc := span.SpanContext()
	return []zap.Field{
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	}
}
