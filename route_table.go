package rawhttp

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/samber/lo"
)

// Route identifies a registered handler.
type Route struct {
	Method string
	Path   string
}

func (r Route) String() string { return r.Method + " " + r.Path }

// RouteTable maps a method and an exact path to a handler. It is filled during setup and sealed once a server
// starts serving it, after which lookups are safe from any number of goroutines without locking.
type RouteTable struct {
	logs        Logger
	routes      map[string]map[string]Handler
	names       map[string]Route
	sealed      atomic.Bool
	middlewares struct {
		captured bool
		buffered []Middleware
	}
}

// NewRouteTable creates an empty route table that reports to the standard logger.
func NewRouteTable() *RouteTable {
	return NewRouteTableWith(NewStdLogger(nil))
}

// NewRouteTableWith creates an empty route table that reports replaced routes to logs.
func NewRouteTableWith(logs Logger) *RouteTable {
	if logs == nil {
		logs = NewStdLogger(nil)
	}

	return &RouteTable{
		logs:   logs,
		routes: make(map[string]map[string]Handler),
		names:  make(map[string]Route),
	}
}

// Use allows providing of middleware. It applies to every route registered afterwards.
func (t *RouteTable) Use(mw ...Middleware) {
	t.ensureNotSealed()
	t.ensureNoUseAfterHandle()
	t.middlewares.buffered = append(t.middlewares.buffered, mw...)
}

// HandleFunc registers a function for the exact method and path.
func (t *RouteTable) HandleFunc(method, path string, handler HandlerFunc, name ...string) {
	t.Handle(method, path, handler, name...)
}

// Handle registers a handler for the exact method and path, replacing any handler registered for the same pair.
// The path is compared verbatim, query string included. An optional name allows reversing the route.
func (t *RouteTable) Handle(method, path string, handler Handler, name ...string) {
	t.ensureNotSealed()
	t.middlewares.captured = true

	if len(name) > 0 {
		t.named(name[0], Route{method, path})
	}

	byPath, ok := t.routes[method]
	if !ok {
		byPath = make(map[string]Handler)
		t.routes[method] = byPath
	}

	if _, exists := byPath[path]; exists {
		t.logs.LogRouteReplaced(Route{method, path})
	}

	byPath[path] = Wrap(handler, t.middlewares.buffered...)
}

// Resolve looks up the handler for the exact method and path.
func (t *RouteTable) Resolve(method, path string) (Handler, bool) {
	byPath, ok := t.routes[method]
	if !ok {
		return nil, false
	}

	h, ok := byPath[path]
	return h, ok
}

// Reverse returns the path of a named route.
func (t *RouteTable) Reverse(name string) (string, error) {
	route, ok := t.names[name]
	if !ok {
		keys := lo.Keys(t.names)
		slices.Sort(keys)

		return "", fmt.Errorf("no route named: %q, got: %v", name, keys) //nolint:goerr113
	}

	return route.Path, nil
}

// Routes returns all registered routes ordered by method and path.
func (t *RouteTable) Routes() []Route {
	var routes []Route
	for method, byPath := range t.routes {
		for path := range byPath {
			routes = append(routes, Route{method, path})
		}
	}

	slices.SortFunc(routes, func(a, b Route) int {
		return cmp.Or(cmp.Compare(a.Method, b.Method), cmp.Compare(a.Path, b.Path))
	})

	return routes
}

// Seal makes the table read-only. Registering afterwards panics.
func (t *RouteTable) Seal() { t.sealed.Store(true) }

// Sealed reports whether the table was sealed.
func (t *RouteTable) Sealed() bool { return t.sealed.Load() }

// serve resolves the request and runs its handler. A missing route is answered with a 404.
func (t *RouteTable) serve(ctx context.Context, w ResponseWriter, r *Request) error {
	h, ok := t.Resolve(r.Method(), r.Path())
	if !ok {
		return w.WriteNotFound()
	}

	return h.ServeRaw(ctx, w, r)
}

func (t *RouteTable) named(name string, route Route) {
	if existing, exists := t.names[name]; exists && existing != route {
		panic(fmt.Sprintf("rawhttp: route with name %q already exists", name))
	}

	t.names[name] = route
}

func (t *RouteTable) ensureNoUseAfterHandle() {
	if t.middlewares.captured {
		panic("rawhttp: cannot call Use() after calling Handle")
	}
}

func (t *RouteTable) ensureNotSealed() {
	if t.sealed.Load() {
		panic("rawhttp: cannot modify a route table that is being served")
	}
}
