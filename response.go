package rawhttp

import (
	"bufio"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
)

// ResponseWriter writes the single response of a connection. Handlers normally use one of the canned helpers, each
// of which writes a complete response and flushes it. Raw writes through Write are buffered until Flush.
type ResponseWriter interface {
	io.Writer

	// WriteText writes a 200 response with a text/plain body.
	WriteText(body string) error
	// WriteBadRequest writes a 400 response with an empty body.
	WriteBadRequest() error
	// WriteNotFound writes a 404 response with an empty body.
	WriteNotFound() error
	// WriteStatus writes a response with the given status and an empty body.
	WriteStatus(c Code) error

	Flush() error
	// Status returns the status of the canned response written so far, or 0.
	Status() int
	// Written reports whether any bytes have been written.
	Written() bool
}

const protoVersion = "HTTP/1.1"

// responseWriter buffers writes to the connection.
type responseWriter struct {
	bw      *bufio.Writer
	status  int
	written bool
}

func newResponseWriter(w io.Writer) *responseWriter {
	return &responseWriter{bw: bufio.NewWriter(w)}
}

func (w *responseWriter) Write(p []byte) (int, error) {
	w.written = true
	return w.bw.Write(p)
}

func (w *responseWriter) WriteText(body string) error {
	return w.writeCanned(CodeOK, "text/plain", body)
}

func (w *responseWriter) WriteBadRequest() error {
	return w.writeCanned(CodeBadRequest, "", "")
}

func (w *responseWriter) WriteNotFound() error {
	return w.writeCanned(CodeNotFound, "", "")
}

func (w *responseWriter) WriteStatus(c Code) error {
	return w.writeCanned(c, "", "")
}

func (w *responseWriter) Flush() error {
	if err := w.bw.Flush(); err != nil {
		return errors.Wrap(err, "flush response")
	}

	return nil
}

func (w *responseWriter) Status() int   { return w.status }
func (w *responseWriter) Written() bool { return w.written }

// writeCanned writes status line, headers and body. Content-Type is only emitted when non-empty.
func (w *responseWriter) writeCanned(c Code, contentType, body string) error {
	w.status = int(c)
	w.written = true

	w.bw.WriteString(protoVersion + " " + strconv.Itoa(int(c)) + " " + c.Text() + "\r\n")
	if contentType != "" {
		w.bw.WriteString("Content-Type: " + contentType + "\r\n")
	}
	w.bw.WriteString("Content-Length: " + strconv.Itoa(len(body)) + "\r\n")
	w.bw.WriteString("Connection: close\r\n")
	w.bw.WriteString("\r\n")
	w.bw.WriteString(body)

	return w.Flush()
}

var _ ResponseWriter = &responseWriter{}
