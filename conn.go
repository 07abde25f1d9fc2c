package rawhttp

import (
	"context"
	"io"
	"net"
	"strings"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/advdv/rawhttp"

// serveConn runs the single exchange of a connection: read once into buf, parse, route, handle. The connection is
// closed on every path.
func (s *Server) serveConn(conn net.Conn, buf []byte) {
	if !s.track(conn) {
		conn.Close()
		return
	}
	defer s.untrack(conn)
	defer func() {
		if err := conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			s.logs.LogConnError(errors.Wrap(err, "close connection"))
		}
	}()

	n, err := conn.Read(buf)
	if n <= 0 {
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
			s.logs.LogConnError(errors.Wrap(err, "read request"))
		}
		return
	}

	req, err := ParseRequest(conn, buf, n)

	ctx := context.Background()
	if req != nil {
		ctx = s.prop.Extract(ctx, headerCarrier{req})
	}

	ctx, span := s.tracer.Start(ctx, spanName(req),
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attribute.String("network.peer.address", conn.RemoteAddr().String())))
	defer span.End()

	w := newResponseWriter(conn)
	defer func() {
		if status := w.Status(); status != 0 {
			span.SetAttributes(attribute.Int("http.response.status_code", status))
		}
	}()

	if err != nil {
		if CodeOf(err) == CodeUnknown {
			s.fail(span, err)
			s.logs.LogConnError(err)
			return
		}

		if werr := w.WriteStatus(CodeOf(err)); werr != nil {
			s.logs.LogWriteError(werr)
		}
		return
	}

	span.SetAttributes(
		attribute.String("http.request.method", req.Method()),
		attribute.String("url.full", req.Target()),
		attribute.Int("http.request.body.size", len(req.Body())))

	if err := s.handle(ctx, w, req); err != nil {
		s.fail(span, err)
		s.renderError(w, err)
		return
	}

	if err := w.Flush(); err != nil {
		s.logs.LogWriteError(err)
	}
}

// handle dispatches to the route table, turning a handler panic into an error.
func (s *Server) handle(ctx context.Context, w ResponseWriter, req *Request) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = errors.Newf("panic serving %s: %v", req.RequestLine(), p)
		}
	}()

	return s.table.serve(ctx, w, req)
}

// renderError answers a handler error if the handler has not written anything yet. Errors with a code get that
// status, others a 500. Once bytes went out the error is only logged and the connection is dropped.
func (s *Server) renderError(w ResponseWriter, err error) {
	code := CodeOf(err)
	if code == CodeUnknown || w.Written() {
		s.logs.LogHandlerError(err)
	}

	if w.Written() {
		return
	}

	if code == CodeUnknown {
		code = CodeInternalServerError
	}

	if werr := w.WriteStatus(code); werr != nil {
		s.logs.LogWriteError(werr)
	}
}

func (s *Server) fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func spanName(req *Request) string {
	if req == nil {
		return "rawhttp malformed request"
	}

	return req.Method() + " " + req.Path()
}

// headerCarrier exposes the raw header lines of a request to an otel propagator. Names match case-insensitively.
type headerCarrier struct{ r *Request }

func (c headerCarrier) Get(key string) string {
	for _, line := range c.r.headers {
		name, val, ok := strings.Cut(line, ":")
		if ok && strings.EqualFold(strings.TrimSpace(name), key) {
			return strings.TrimSpace(val)
		}
	}

	return ""
}

func (c headerCarrier) Set(string, string) {}

func (c headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c.r.headers))
	for _, line := range c.r.headers {
		if name, _, ok := strings.Cut(line, ":"); ok {
			keys = append(keys, strings.ToLower(strings.TrimSpace(name)))
		}
	}

	return keys
}

var _ propagation.TextMapCarrier = headerCarrier{}
