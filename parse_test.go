package rawhttp_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/advdv/rawhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parse simulates the initial read of a connection: at most window bytes of wire land in the buffer, the rest
// stays in the stream.
func parse(t *testing.T, wire string, window int) (*rawhttp.Request, error) {
	t.Helper()

	stream := strings.NewReader(wire)
	buf := make([]byte, window)
	n, err := stream.Read(buf)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}

	return rawhttp.ParseRequest(stream, buf, n)
}

func TestParseRequest(t *testing.T) {
	req, err := parse(t, "GET /messages?x=1 HTTP/1.1\r\nHost: x\r\nAccept: */*\r\n\r\n", 4096)
	require.NoError(t, err)

	assert.Equal(t, "GET", req.Method())
	assert.Equal(t, "/messages?x=1", req.Target())
	assert.Equal(t, "/messages?x=1", req.Path())
	assert.Equal(t, "HTTP/1.1", req.Version())
	assert.Equal(t, []string{"Host: x", "Accept: */*"}, req.Headers())
	assert.Empty(t, req.Body())
}

func TestParseRequestWithoutHeaders(t *testing.T) {
	req, err := parse(t, "GET /unknown HTTP/1.1\r\n\r\n", 4096)
	require.NoError(t, err)

	assert.Equal(t, "/unknown", req.Path())
	assert.Empty(t, req.Headers())
}

func TestParseRequestFailures(t *testing.T) {
	tests := []struct {
		name string
		wire string
		want error
		code rawhttp.Code
	}{
		{"no line terminator", "GET / HTTP/1.1", rawhttp.ErrMalformedStart, rawhttp.CodeNotFound},
		{"empty request", "\r\n\r\n", rawhttp.ErrMalformedStart, rawhttp.CodeNotFound},
		{"one token", "GET\r\n\r\n\r\n", rawhttp.ErrMalformedStart, rawhttp.CodeNotFound},
		{"two tokens", "GET /\r\n\r\n", rawhttp.ErrMalformedStart, rawhttp.CodeNotFound},
		{"four tokens", "GET / HTTP/1.1 extra\r\n\r\n", rawhttp.ErrMalformedStart, rawhttp.CodeNotFound},
		{"double space", "GET  / HTTP/1.1\r\n\r\n", rawhttp.ErrMalformedStart, rawhttp.CodeNotFound},
		{"unterminated headers", "GET / HTTP/1.1\r\nHost: x\r\n", rawhttp.ErrMalformedHeaders, rawhttp.CodeBadRequest},
		{"headers without any blank line", "GET / HTTP/1.1\r\nHost: x", rawhttp.ErrMalformedHeaders, rawhttp.CodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := parse(t, tt.wire, 4096)
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, req)
			assert.Equal(t, tt.code, rawhttp.CodeOf(err))
		})
	}
}

func TestParseRequestHeadersMustFitWindow(t *testing.T) {
	wire := "GET / HTTP/1.1\r\nX-Long: " + strings.Repeat("a", 64) + "\r\n\r\n"

	_, err := parse(t, wire, 32)
	require.ErrorIs(t, err, rawhttp.ErrMalformedHeaders)

	_, err = parse(t, wire, 8)
	require.ErrorIs(t, err, rawhttp.ErrMalformedStart)

	_, err = parse(t, wire, len(wire))
	require.NoError(t, err)
}

func TestParseRequestRoundTrip(t *testing.T) {
	for _, wire := range []string{
		"GET /messages HTTP/1.1\r\nHost: x\r\n\r\n",
		"GET / HTTP/1.0\r\n\r\n",
		"POST /a?b=c HTTP/1.1\r\nHost: x\r\nX-Dup: 1\r\nX-Dup: 2\r\nContent-Length: 0\r\n\r\n",
		"DELETE /x HTTP/1.1\r\nweird header without colon\r\n: empty name\r\n\r\n",
	} {
		t.Run(strings.Fields(wire)[0], func(t *testing.T) {
			req, err := parse(t, wire, 4096)
			require.NoError(t, err)
			assert.Equal(t, wire, string(req.Head()))
		})
	}
}

func TestParseRequestBody(t *testing.T) {
	tests := []struct {
		name   string
		wire   string
		window int
		want   string
	}{
		{
			name:   "body within window",
			wire:   "POST /messages HTTP/1.1\r\nContent-Length: 4\r\n\r\nabcd",
			window: 4096,
			want:   "abcd",
		},
		{
			name:   "body containing header terminator",
			wire:   "POST /m HTTP/1.1\r\nContent-Length: 10\r\n\r\nab\r\n\r\ncdef",
			window: 4096,
			want:   "ab\r\n\r\ncdef",
		},
		{
			name:   "body beyond window",
			wire:   "POST /m HTTP/1.1\r\nContent-Length: 100\r\n\r\n" + strings.Repeat("z", 100),
			window: 48,
			want:   strings.Repeat("z", 100),
		},
		{
			name:   "body starting past window",
			wire:   "POST /m HTTP/1.1\r\nContent-Length: 3\r\n\r\nxyz",
			window: 39,
			want:   "xyz",
		},
		{
			name:   "trailing bytes ignored",
			wire:   "POST /m HTTP/1.1\r\nContent-Length: 2\r\n\r\nabcdef",
			window: 4096,
			want:   "ab",
		},
		{
			name:   "no content length",
			wire:   "POST /m HTTP/1.1\r\nHost: x\r\n\r\nabcd",
			window: 4096,
			want:   "",
		},
		{
			name:   "malformed content length",
			wire:   "POST /m HTTP/1.1\r\nContent-Length: four\r\n\r\nabcd",
			window: 4096,
			want:   "",
		},
		{
			name:   "negative content length",
			wire:   "POST /m HTTP/1.1\r\nContent-Length: -4\r\n\r\nabcd",
			window: 4096,
			want:   "",
		},
		{
			name:   "first content length wins",
			wire:   "POST /m HTTP/1.1\r\nContent-Length: 1\r\nContent-Length: 3\r\n\r\nabcd",
			window: 4096,
			want:   "a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := parse(t, tt.wire, tt.window)
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Body())
		})
	}
}

func TestParseRequestBodyDoesNotReadWithoutContentLength(t *testing.T) {
	head := "GET / HTTP/1.1\r\nHost: x\r\n\r\n"
	buf := make([]byte, 4096)
	n := copy(buf, head)

	stream := bytes.NewBufferString("never read")
	_, err := rawhttp.ParseRequest(stream, buf, n)
	require.NoError(t, err)
	assert.Equal(t, "never read", stream.String())
}

func TestParseRequestTruncatedBody(t *testing.T) {
	_, err := parse(t, "POST /m HTTP/1.1\r\nContent-Length: 10\r\n\r\nabc", 4096)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, rawhttp.CodeUnknown, rawhttp.CodeOf(err))
}
