package rawhttp

import (
	"context"
)

// Handler serves a parsed request. It writes its response through w; a returned error is logged and, when it
// carries a [Code] and nothing has been written yet, rendered as that status.
type Handler interface {
	ServeRaw(ctx context.Context, w ResponseWriter, r *Request) error
}

// HandlerFunc allow casting a function to implement [Handler].
type HandlerFunc func(context.Context, ResponseWriter, *Request) error

// ServeRaw implements the [Handler] interface.
func (f HandlerFunc) ServeRaw(ctx context.Context, w ResponseWriter, r *Request) error {
	return f(ctx, w, r)
}
