package rawhttp

import (
	"log"
	"sync/atomic"
	"testing"
)

// Logger can be implemented to get informed about failures that never reach the peer.
type Logger interface {
	LogAcceptError(err error)
	LogConnError(err error)
	LogHandlerError(err error)
	LogWriteError(err error)
	LogRouteReplaced(route Route)
}

type stdLogger struct{ *log.Logger }

func (l stdLogger) LogAcceptError(err error) {
	l.Logger.Printf("rawhttp: error accepting connection: %s", err)
}

func (l stdLogger) LogConnError(err error) {
	l.Logger.Printf("rawhttp: connection error: %s", err)
}

func (l stdLogger) LogHandlerError(err error) {
	l.Logger.Printf("rawhttp: handler error: %s", err)
}

func (l stdLogger) LogWriteError(err error) {
	l.Logger.Printf("rawhttp: error while writing response: %s", err)
}

func (l stdLogger) LogRouteReplaced(route Route) {
	l.Logger.Printf("rawhttp: handler for %s replaced", route)
}

// NewStdLogger returns a Logger that prints to l. A nil l uses the standard logger.
func NewStdLogger(l *log.Logger) Logger {
	if l == nil {
		l = log.Default()
	}

	return stdLogger{l}
}

type TestLogger struct {
	tb testing.TB

	NumLogAcceptError   int64
	NumLogConnError     int64
	NumLogHandlerError  int64
	NumLogWriteError    int64
	NumLogRouteReplaced int64
}

func NewTestLogger(tb testing.TB) *TestLogger {
	return &TestLogger{tb: tb}
}

func (l *TestLogger) LogAcceptError(err error) {
	atomic.AddInt64(&l.NumLogAcceptError, 1)
	l.tb.Logf("rawhttp: error accepting connection: %s", err)
}

func (l *TestLogger) LogConnError(err error) {
	atomic.AddInt64(&l.NumLogConnError, 1)
	l.tb.Logf("rawhttp: connection error: %s", err)
}

func (l *TestLogger) LogHandlerError(err error) {
	atomic.AddInt64(&l.NumLogHandlerError, 1)
	l.tb.Logf("rawhttp: handler error: %s", err)
}

func (l *TestLogger) LogWriteError(err error) {
	atomic.AddInt64(&l.NumLogWriteError, 1)
	l.tb.Logf("rawhttp: error while writing response: %s", err)
}

func (l *TestLogger) LogRouteReplaced(route Route) {
	atomic.AddInt64(&l.NumLogRouteReplaced, 1)
	l.tb.Logf("rawhttp: handler for %s replaced", route)
}

// Counts returns a snapshot of the error counters.
func (l *TestLogger) Counts() (accept, conn, handler, write int64) {
	return atomic.LoadInt64(&l.NumLogAcceptError),
		atomic.LoadInt64(&l.NumLogConnError),
		atomic.LoadInt64(&l.NumLogHandlerError),
		atomic.LoadInt64(&l.NumLogWriteError)
}

var _ Logger = &TestLogger{}
