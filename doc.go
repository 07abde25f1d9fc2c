// Package rawhttp provides a minimal HTTP/1.1 server that parses requests straight from socket bytes.
//
// # Overview
//
// rawhttp does not use net/http for serving. Each accepted connection is read once into a fixed-size window, the
// request line and header block are located by scanning for CRLF delimiters, an optional body is read according to
// its Content-Length, and the request is dispatched to the handler registered for its exact method and path. Every
// response carries "Connection: close" and every connection serves exactly one exchange.
//
// A minimal example:
//
//	table := rawhttp.NewRouteTable()
//	table.HandleFunc("GET", "/messages", func(ctx context.Context, w rawhttp.ResponseWriter, r *rawhttp.Request) error {
//	    return w.WriteText("Hello from GET /messages")
//	})
//
//	srv := rawhttp.NewServer(table, rawhttp.WithWorkers(64))
//	log.Fatal(srv.ListenAndServe(rawhttp.DefaultPort))
//
// # Parsing
//
// [ParseRequest] requires the request line and the complete header block within the bytes of the first read
// (4096 by default, see [WithReadWindow]). Header lines are kept verbatim and in wire order; [Request.Header]
// returns the value of the first line starting with the given name. When a valid Content-Length is declared
// exactly that many body bytes are taken, reading past the window if needed.
//
// Failures are answered with canned responses:
//
//   - a missing request line terminator or a request line without exactly three tokens: 404 ([ErrMalformedStart])
//   - a header block that is not terminated within the window: 400 ([ErrMalformedHeaders])
//   - no route for the method and path: 404
//
// I/O failures are reported to the [Logger] and the connection is closed without a response.
//
// # Routing
//
// [RouteTable] matches the method and the raw request target by string equality. The query string is part of
// the target, so "/messages?x=1" does not match a route registered for "/messages". Registration happens before
// serving; [Server.Serve] seals the table, after which it is only read.
//
// Middleware registered with [RouteTable.Use] wraps every route registered afterwards:
//
//	table.Use(func(next rawhttp.Handler) rawhttp.Handler {
//	    return rawhttp.HandlerFunc(func(ctx context.Context, w rawhttp.ResponseWriter, r *rawhttp.Request) error {
//	        start := time.Now()
//	        err := next.ServeRaw(ctx, w, r)
//	        log.Printf("%s took %v", r.RequestLine(), time.Since(start))
//	        return err
//	    })
//	})
//
// # Handler Errors
//
// A handler returns an error instead of writing an error response itself. If nothing was written yet, an error
// created with [NewError] is answered with its [Code] and any other error with a 500. Once the handler has
// written bytes the error is only logged.
//
// # Concurrency
//
// [Server] runs a fixed pool of workers, 64 by default. The accept loop hands every connection to the pool and
// blocks while all workers are busy, so the worker count bounds the number of connections served at once. There
// are no read or write timeouts: a stalled peer keeps its worker until the read returns.
package rawhttp
