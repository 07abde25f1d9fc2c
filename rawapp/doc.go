// Package rawapp wires a [rawhttp.Server] into a runnable application: environment parsing, structured logging,
// OpenTelemetry tracing and fx lifecycle management. A complete application is created in a single call:
//
//	rawapp.NewApp[rawapp.BaseEnvironment](func(t *rawhttp.RouteTable) {
//	    t.HandleFunc("GET", "/messages", getMessages, "get-messages")
//	}).Run()
//
// # Environment Configuration
//
// Define your environment by embedding [BaseEnvironment]:
//
//	type Env struct {
//	    rawapp.BaseEnvironment
//	    Greeting string `env:"GREETING" envDefault:"hello"`
//	}
//
// BaseEnvironment provides the following environment variables, all optional:
//
//	| Variable              | Default | Description                                   |
//	|-----------------------|---------|-----------------------------------------------|
//	| RAWHTTP_PORT          | 9999    | Port the server listens on (0 picks one)      |
//	| RAWHTTP_SERVICE_NAME  | rawhttp | Service name for logging and tracing          |
//	| RAWHTTP_WORKERS       | 64      | Connections served at the same time           |
//	| RAWHTTP_READ_WINDOW   | 4096    | Bytes that must hold request line and headers |
//	| RAWHTTP_LOG_LEVEL     | info    | Log level (debug, info, warn, error)          |
//	| RAWHTTP_OTEL_EXPORTER | none    | Trace exporter: "none" or "stdout"            |
//
// # Runtime
//
// [Runtime] provides access to app-scoped dependencies and should be injected into handler constructors via fx:
// [Runtime.Env] returns the typed environment and [Runtime.Reverse] resolves named routes.
//
// # Context
//
// Handlers receive a context.Context carrying request-scoped values:
//
//	func (h *Handlers) GetItem(ctx context.Context, w rawhttp.ResponseWriter, r *rawhttp.Request) error {
//	    rawapp.Log(ctx).Info("fetching item")
//	    rawapp.Span(ctx).AddEvent("fetching item")
//	    // ...
//	}
//
// Every routed request is also written to an access log with its method, target and status.
package rawapp
