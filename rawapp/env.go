package rawapp

import (
	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap/zapcore"
)

// Environment defines the interface that all environment configurations must implement.
// Embed BaseEnvironment in your struct to satisfy this interface.
type Environment interface {
	port() int
	serviceName() string
	workers() int
	readWindow() int
	logLevel() zapcore.Level
	otelExporter() string
}

// BaseEnvironment contains the server environment variables. Every variable has a default so the server starts
// without any configuration.
type BaseEnvironment struct {
	Port         int           `env:"RAWHTTP_PORT" envDefault:"9999"`
	ServiceName  string        `env:"RAWHTTP_SERVICE_NAME" envDefault:"rawhttp"`
	Workers      int           `env:"RAWHTTP_WORKERS" envDefault:"64"`
	ReadWindow   int           `env:"RAWHTTP_READ_WINDOW" envDefault:"4096"`
	LogLevel     zapcore.Level `env:"RAWHTTP_LOG_LEVEL" envDefault:"info"`
	OtelExporter string        `env:"RAWHTTP_OTEL_EXPORTER" envDefault:"none"`
}

func (e BaseEnvironment) port() int {
	return e.Port
}

func (e BaseEnvironment) serviceName() string {
	return e.ServiceName
}

func (e BaseEnvironment) workers() int {
	return e.Workers
}

func (e BaseEnvironment) readWindow() int {
	return e.ReadWindow
}

func (e BaseEnvironment) logLevel() zapcore.Level {
	return e.LogLevel
}

func (e BaseEnvironment) otelExporter() string {
	return e.OtelExporter
}

var _ Environment = BaseEnvironment{}

// ParseEnv parses environment variables into the given Environment type.
func ParseEnv[E Environment]() func() (E, error) {
	return func() (e E, err error) {
		if err := env.Parse(&e); err != nil {
			return e, errors.Wrap(err, "failed to parse environment")
		}

		if err := validate(e); err != nil {
			return e, err
		}

		return e, nil
	}
}

func validate(e Environment) error {
	switch {
	case e.port() < 0 || e.port() > 65535:
		return errors.Newf("RAWHTTP_PORT out of range: %d", e.port())
	case e.workers() < 1:
		return errors.Newf("RAWHTTP_WORKERS must be positive, got: %d", e.workers())
	case e.readWindow() < 1:
		return errors.Newf("RAWHTTP_READ_WINDOW must be positive, got: %d", e.readWindow())
	}

	return nil
}
