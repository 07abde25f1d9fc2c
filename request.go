package rawhttp

import (
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// Request is a parsed request. It is built once per connection and never modified afterwards.
type Request struct {
	method  string
	target  string
	version string
	headers []string
	body    string
}

// NewRequest builds a request from its parts. The headers are copied.
func NewRequest(method, target, version string, headers []string, body string) *Request {
	return &Request{
		method:  method,
		target:  target,
		version: version,
		headers: append([]string(nil), headers...),
		body:    body,
	}
}

func (r *Request) Method() string  { return r.method }
func (r *Request) Target() string  { return r.target }
func (r *Request) Version() string { return r.version }
func (r *Request) Body() string    { return r.body }

// Path returns the raw request target, query string included. Routing matches on this value.
func (r *Request) Path() string { return r.target }

// Headers returns the raw header lines in wire order.
func (r *Request) Headers() []string {
	return append([]string(nil), r.headers...)
}

// Header returns the value of the first header line that starts with name. The value is everything after the
// first space of the line, trimmed.
func (r *Request) Header(name string) (string, bool) {
	return headerValue(r.headers, name)
}

// RequestLine returns the request line as it appeared on the wire, without its terminator.
func (r *Request) RequestLine() string {
	return r.method + " " + r.target + " " + r.version
}

// Head serializes the request line and header block, terminators included.
func (r *Request) Head() []byte {
	var b strings.Builder
	b.WriteString(r.RequestLine())
	b.Write(requestLineDelimiter)
	for _, h := range r.headers {
		b.WriteString(h)
		b.Write(requestLineDelimiter)
	}
	b.Write(requestLineDelimiter)

	return []byte(b.String())
}

// QueryParams parses the query part of the target.
func (r *Request) QueryParams() (url.Values, error) {
	u, err := url.ParseRequestURI(r.target)
	if err != nil {
		return nil, errors.Wrapf(err, "parse target %q", r.target)
	}

	vals, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return nil, errors.Wrapf(err, "parse query of %q", r.target)
	}

	return vals, nil
}

// QueryParam returns all values of the named query parameter. A target that cannot be parsed has no parameters.
func (r *Request) QueryParam(name string) []string {
	vals, err := r.QueryParams()
	if err != nil {
		return nil
	}

	return vals[name]
}

func headerValue(headers []string, name string) (string, bool) {
	line, ok := lo.Find(headers, func(h string) bool {
		return strings.HasPrefix(h, name)
	})
	if !ok {
		return "", false
	}

	_, val, ok := strings.Cut(line, " ")
	if !ok {
		return "", false
	}

	return strings.TrimSpace(val), true
}
