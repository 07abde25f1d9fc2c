package rawhttp

// Middleware wraps a route handler for cross-cutting concerns such as logging or context values.
type Middleware func(Handler) Handler

// Wrap returns h wrapped in m. The first middleware sees the request first and the response last; the last one
// runs directly around h. [RouteTable.Use] applies its middleware in registration order this way.
func Wrap(h Handler, m ...Middleware) Handler {
	wrapped := h
	for i := len(m) - 1; i >= 0; i-- {
		wrapped = m[i](wrapped)
	}

	return wrapped
}
