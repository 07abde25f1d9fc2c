package rawhttp

import (
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	// DefaultWorkers bounds the number of connections served at the same time.
	DefaultWorkers = 64
	// DefaultReadWindow is the size of the buffer that must hold the request line and all headers.
	DefaultReadWindow = 4096
	// DefaultPort is the port rawhttpd listens on when RAWHTTP_PORT is unset.
	DefaultPort = 9999

	maxAcceptBackoff = time.Second
)

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithWorkers sets the size of the worker pool.
func WithWorkers(n int) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithReadWindow sets the size of the per-worker read buffer.
func WithReadWindow(n int) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.window = n
		}
	}
}

// WithLogger sets where failures that never reach the peer are reported.
func WithLogger(logs Logger) ServerOption {
	return func(s *Server) {
		if logs != nil {
			s.logs = logs
		}
	}
}

// WithTracerProvider enables a span per connection.
func WithTracerProvider(tp trace.TracerProvider) ServerOption {
	return func(s *Server) {
		if tp != nil {
			s.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithPropagator sets how trace context is extracted from request headers.
func WithPropagator(prop propagation.TextMapPropagator) ServerOption {
	return func(s *Server) {
		if prop != nil {
			s.prop = prop
		}
	}
}

// Server accepts connections and serves each one on a worker from a fixed pool. Every connection carries exactly
// one request and one response.
type Server struct {
	table   *RouteTable
	logs    Logger
	tracer  trace.Tracer
	prop    propagation.TextMapPropagator
	workers int
	window  int

	mu      sync.Mutex
	ln      net.Listener
	active  map[net.Conn]struct{}
	conns   chan net.Conn
	done    chan struct{}
	closing sync.Once
	pool    sync.WaitGroup
}

// NewServer creates a server for the given route table.
func NewServer(table *RouteTable, opts ...ServerOption) *Server {
	s := &Server{
		table:   table,
		logs:    NewStdLogger(nil),
		tracer:  noop.NewTracerProvider().Tracer(tracerName),
		prop:    propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}),
		workers: DefaultWorkers,
		window:  DefaultReadWindow,
		active:  make(map[net.Conn]struct{}),
		conns:   make(chan net.Conn),
		done:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ListenAndServe binds the port on all interfaces and serves it. It only returns when binding fails or the server
// is closed.
func (s *Server) ListenAndServe(port int) error {
	ln, err := net.Listen("tcp", ":"+strconv.Itoa(port))
	if err != nil {
		return errors.Wrapf(err, "listen on port %d", port)
	}

	return s.Serve(ln)
}

// Serve accepts connections on ln and hands each to the worker pool. The handoff blocks while every worker is busy.
// Accept failures are logged and accepting continues; Serve returns [ErrServerClosed] after Close.
func (s *Server) Serve(ln net.Listener) error {
	if err := s.init(ln); err != nil {
		return err
	}

	var backoff time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.isClosed() || errors.Is(err, net.ErrClosed) {
				return ErrServerClosed
			}

			s.logs.LogAcceptError(err)

			backoff = min(max(2*backoff, 5*time.Millisecond), maxAcceptBackoff)
			time.Sleep(backoff)
			continue
		}
		backoff = 0

		select {
		case s.conns <- conn:
		case <-s.done:
			conn.Close()
			return ErrServerClosed
		}
	}
}

// Addr returns the address being served, or nil before Serve.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ln == nil {
		return nil
	}

	return s.ln.Addr()
}

// Close stops accepting, closes in-flight connections and waits for the workers to return.
func (s *Server) Close() error {
	var err error
	s.closing.Do(func() {
		close(s.done)

		s.mu.Lock()
		if s.ln != nil {
			if cerr := s.ln.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) {
				err = errors.Wrap(cerr, "close listener")
			}
		}
		for conn := range s.active {
			conn.Close()
		}
		s.mu.Unlock()

		s.pool.Wait()
	})

	return err
}

func (s *Server) init(ln net.Listener) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isClosed() {
		return ErrServerClosed
	}

	if s.ln != nil {
		return errors.New("rawhttp: server is already serving")
	}

	s.ln = ln
	s.table.Seal()

	s.pool.Add(s.workers)
	for range s.workers {
		go s.work()
	}

	return nil
}

// work serves connections until the server is closed. Each worker owns one read window for its lifetime.
func (s *Server) work() {
	defer s.pool.Done()

	buf := make([]byte, s.window)
	for {
		select {
		case conn := <-s.conns:
			s.serveConn(conn, buf)
		case <-s.done:
			return
		}
	}
}

func (s *Server) isClosed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// track registers an in-flight connection so Close can interrupt it. It reports false once the server is closed.
func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isClosed() {
		return false
	}

	s.active[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.active, conn)
}
