package rawhttp

import (
	"bytes"
	"strings"
)

// Recorder is a ResponseWriter that keeps the response in memory. It is meant for testing handlers.
type Recorder struct {
	*responseWriter
	buf *bytes.Buffer
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	buf := new(bytes.Buffer)
	return &Recorder{responseWriter: newResponseWriter(buf), buf: buf}
}

// Raw returns the flushed response bytes.
func (r *Recorder) Raw() string { return r.buf.String() }

// Body returns the flushed bytes that follow the header block.
func (r *Recorder) Body() string {
	_, body, _ := strings.Cut(r.buf.String(), "\r\n\r\n")
	return body
}

var _ ResponseWriter = &Recorder{}
