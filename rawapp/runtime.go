package rawapp

import (
	"net"

	"github.com/advdv/rawhttp"
)

// Runtime provides access to app-scoped dependencies.
// Inject this into handler constructors via fx instead of pulling from context.
//
// Example:
//
//	type Handlers struct {
//	    rt *rawapp.Runtime[Env]
//	}
//
//	func NewHandlers(rt *rawapp.Runtime[Env]) *Handlers {
//	    return &Handlers{rt: rt}
//	}
type Runtime[E Environment] struct {
	env   E
	table *rawhttp.RouteTable
	ln    net.Listener
}

// NewRuntime creates a new Runtime with the given dependencies.
func NewRuntime[E Environment](env E, table *rawhttp.RouteTable, ln net.Listener) *Runtime[E] {
	return &Runtime[E]{
		env:   env,
		table: table,
		ln:    ln,
	}
}

// Env returns the environment configuration.
func (r *Runtime[E]) Env() E {
	return r.env
}

// Reverse returns the path of a named route.
// The route must have been registered with a name using Handle/HandleFunc.
func (r *Runtime[E]) Reverse(name string) (string, error) {
	return r.table.Reverse(name)
}

// Addr returns the address the server is bound to.
func (r *Runtime[E]) Addr() net.Addr {
	return r.ln.Addr()
}
