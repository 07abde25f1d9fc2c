package rawapp

import (
	"github.com/advdv/rawhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a JSON zap logger configured from the environment.
// RAWHTTP_LOG_LEVEL controls the level (debug, info, warn, error).
func NewLogger(env Environment) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(env.logLevel())
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logs, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return logs.With(zap.String("service", env.serviceName())), nil
}

type zapLogger struct{ *zap.Logger }

func (l zapLogger) LogAcceptError(err error) {
	l.Logger.Error("error while accepting connection", zap.Error(err))
}

func (l zapLogger) LogConnError(err error) {
	l.Logger.Error("connection dropped without response", zap.Error(err))
}

func (l zapLogger) LogHandlerError(err error) {
	l.Logger.Error("unhandled handler error", zap.Error(err))
}

func (l zapLogger) LogWriteError(err error) {
	l.Logger.Error("error while writing response", zap.Error(err))
}

func (l zapLogger) LogRouteReplaced(route rawhttp.Route) {
	l.Logger.Warn("handler replaced", zap.Stringer("route", route))
}

func newZapRawHTTPLogger(l *zap.Logger) rawhttp.Logger {
	return zapLogger{l.Named("rawhttp")}
}
