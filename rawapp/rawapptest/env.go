package rawapptest

import (
	"strconv"
	"testing"
)

// Env provides a chainable builder for setting [rawapp.BaseEnvironment] env vars via t.Setenv. Create one with
// [SetBaseEnv].
type Env struct {
	t testing.TB
}

// SetBaseEnv sets the [rawapp.BaseEnvironment] env vars to test defaults.
//
// Defaults:
//   - RAWHTTP_PORT: "0" (a free port, see [rawapp.Runtime.Addr])
//   - RAWHTTP_SERVICE_NAME: "test"
//   - RAWHTTP_WORKERS: "4"
//   - RAWHTTP_LOG_LEVEL: "error"
//   - RAWHTTP_OTEL_EXPORTER: "none"
//
// Use the returned [Env] to override individual values:
//
//	rawapptest.SetBaseEnv(t).Workers(1).LogLevel("debug")
func SetBaseEnv(t testing.TB) *Env {
	t.Helper()
	t.Setenv("RAWHTTP_PORT", "0")
	t.Setenv("RAWHTTP_SERVICE_NAME", "test")
	t.Setenv("RAWHTTP_WORKERS", "4")
	t.Setenv("RAWHTTP_LOG_LEVEL", "error")
	t.Setenv("RAWHTTP_OTEL_EXPORTER", "none")
	return &Env{t: t}
}

// Port overrides RAWHTTP_PORT.
func (e *Env) Port(port int) *Env {
	e.t.Helper()
	e.t.Setenv("RAWHTTP_PORT", strconv.Itoa(port))
	return e
}

// ServiceName overrides RAWHTTP_SERVICE_NAME.
func (e *Env) ServiceName(name string) *Env {
	e.t.Helper()
	e.t.Setenv("RAWHTTP_SERVICE_NAME", name)
	return e
}

// Workers overrides RAWHTTP_WORKERS.
func (e *Env) Workers(n int) *Env {
	e.t.Helper()
	e.t.Setenv("RAWHTTP_WORKERS", strconv.Itoa(n))
	return e
}

// ReadWindow overrides RAWHTTP_READ_WINDOW.
func (e *Env) ReadWindow(n int) *Env {
	e.t.Helper()
	e.t.Setenv("RAWHTTP_READ_WINDOW", strconv.Itoa(n))
	return e
}

// LogLevel overrides RAWHTTP_LOG_LEVEL.
func (e *Env) LogLevel(level string) *Env {
	e.t.Helper()
	e.t.Setenv("RAWHTTP_LOG_LEVEL", level)
	return e
}

// OtelExporter overrides RAWHTTP_OTEL_EXPORTER.
func (e *Env) OtelExporter(exporter string) *Env {
	e.t.Helper()
	e.t.Setenv("RAWHTTP_OTEL_EXPORTER", exporter)
	return e
}
