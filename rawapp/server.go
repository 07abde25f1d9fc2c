package rawapp

import (
	"context"
	"net"
	"strconv"

	"github.com/advdv/rawhttp"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ServerParams holds the dependencies for creating the raw server.
type ServerParams struct {
	fx.In

	Env        Environment
	Table      *rawhttp.RouteTable
	Logger     *zap.Logger
	TracerProv trace.TracerProvider
	Propagator propagation.TextMapPropagator
}

// NewServer creates a raw server with the request-scoped middleware installed on the route table.
func NewServer(params ServerParams) *rawhttp.Server {
	d := &requestDep{
		logger: params.Logger,
	}

	params.Table.Use(withRequestDep(d))
	params.Table.Use(withAccessLog())

	return rawhttp.NewServer(params.Table,
		rawhttp.WithWorkers(params.Env.workers()),
		rawhttp.WithReadWindow(params.Env.readWindow()),
		rawhttp.WithLogger(newZapRawHTTPLogger(params.Logger)),
		rawhttp.WithTracerProvider(params.TracerProv),
		rawhttp.WithPropagator(params.Propagator),
	)
}

// NewListener binds RAWHTTP_PORT on all interfaces. Port 0 picks a free port, see [Runtime.Addr].
func NewListener(env Environment) (net.Listener, error) {
	ln, err := net.Listen("tcp", ":"+strconv.Itoa(env.port()))
	if err != nil {
		return nil, errors.Wrapf(err, "listen on port %d", env.port())
	}

	return ln, nil
}

// startServerHook registers lifecycle hooks for the raw server.
func startServerHook(
	lc fx.Lifecycle, server *rawhttp.Server, ln net.Listener, table *rawhttp.RouteTable, logger *zap.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			logger.Info("starting server",
				zap.String("addr", ln.Addr().String()),
				zap.Strings("routes", lo.Map(table.Routes(), func(r rawhttp.Route, _ int) string {
					return r.String()
				})))

			go func() {
				if err := server.Serve(ln); err != nil && !errors.Is(err, rawhttp.ErrServerClosed) {
					logger.Error("server error", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			logger.Info("stopping server")
			err := server.Close()
			if cerr := ln.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) {
				err = errors.CombineErrors(err, errors.Wrap(cerr, "close listener"))
			}
			return err
		},
	})
}
