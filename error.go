package rawhttp

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Code is an error code that mirrors the http status codes. The connection handler renders an error that carries a
// code as a canned response with that status.
type Code int

const (
	CodeUnknown             Code = 0
	CodeOK                  Code = http.StatusOK                  // RFC 9110, 15.3.1
	CodeBadRequest          Code = http.StatusBadRequest          // RFC 9110, 15.5.1
	CodeNotFound            Code = http.StatusNotFound            // RFC 9110, 15.5.5
	CodeMethodNotAllowed    Code = http.StatusMethodNotAllowed    // RFC 9110, 15.5.6
	CodeLengthRequired      Code = http.StatusLengthRequired      // RFC 9110, 15.5.12
	CodeInternalServerError Code = http.StatusInternalServerError // RFC 9110, 15.6.1
	CodeNotImplemented      Code = http.StatusNotImplemented      // RFC 9110, 15.6.2
	CodeServiceUnavailable  Code = http.StatusServiceUnavailable  // RFC 9110, 15.6.4
)

// Text returns the reason phrase for the code, or "Unknown".
func (c Code) Text() string {
	if s := http.StatusText(int(c)); s != "" {
		return s
	}

	return "Unknown"
}

var (
	// ErrMalformedStart is returned when the request line is missing from the read window or does not consist of
	// exactly three tokens. It is answered with a 404.
	ErrMalformedStart = NewError(CodeNotFound, errors.New("malformed request line"))

	// ErrMalformedHeaders is returned when the header block is not terminated within the read window. It is
	// answered with a 400.
	ErrMalformedHeaders = NewError(CodeBadRequest, errors.New("header block not terminated"))

	// ErrServerClosed is returned by Serve after the server has been closed.
	ErrServerClosed = errors.New("rawhttp: server closed")
)

// Error describes an http error.
type Error struct {
	code Code
	err  error
}

// NewError inits a new error given the error code.
func NewError(c Code, underlying error) *Error {
	return &Error{c, underlying}
}

func (e *Error) Code() Code    { return e.code }
func (e *Error) Unwrap() error { return e.err }
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.code.Text(), e.err.Error())
}

// CodeOf returns the error's status code if it is or wraps an [*Error] and
// [CodeUnknown] otherwise.
func CodeOf(err error) Code {
	if rawErr, ok := asError(err); ok {
		return rawErr.Code()
	}
	return CodeUnknown
}

// asError uses errors.As to unwrap any error and look for a *Error.
func asError(err error) (*Error, bool) {
	var rawErr *Error
	ok := errors.As(err, &rawErr)
	return rawErr, ok
}
