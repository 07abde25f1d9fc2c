package rawhttp

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ParseRequest parses the first n bytes of buf, which hold the initial read from r. The request line and the
// complete header block must lie within those bytes. When a valid Content-Length is declared the body is taken from
// the bytes following the header block and, if those are not enough, read from r until the declared length is met.
func ParseRequest(r io.Reader, buf []byte, n int) (*Request, error) {
	if n > len(buf) {
		n = len(buf)
	}

	lineEnd := IndexOf(buf, requestLineDelimiter, 0, n)
	if lineEnd == -1 {
		return nil, ErrMalformedStart
	}

	parts := strings.Split(string(buf[:lineEnd]), " ")
	if len(parts) != 3 {
		return nil, ErrMalformedStart
	}

	// the search starts at the request line terminator so that an empty header block is found too
	headersEnd := IndexOf(buf, headersDelimiter, lineEnd, n)
	if headersEnd == -1 {
		return nil, ErrMalformedHeaders
	}

	var headers []string
	if headersStart := lineEnd + len(requestLineDelimiter); headersEnd > lineEnd {
		headers = strings.Split(string(buf[headersStart:headersEnd]), "\r\n")
	}

	body, err := readBody(r, headers, buf[headersEnd+len(headersDelimiter):n])
	if err != nil {
		return nil, err
	}

	return &Request{
		method:  parts[0],
		target:  parts[1],
		version: parts[2],
		headers: headers,
		body:    body,
	}, nil
}

// contentLength returns the declared body length. Absent or malformed values report false.
func contentLength(headers []string) (int64, bool) {
	val, ok := headerValue(headers, "Content-Length")
	if !ok {
		return 0, false
	}

	length, err := strconv.ParseInt(val, 10, 64)
	if err != nil || length < 0 {
		return 0, false
	}

	return length, true
}

func readBody(r io.Reader, headers []string, buffered []byte) (string, error) {
	length, ok := contentLength(headers)
	if !ok || length == 0 {
		return "", nil
	}

	if int64(len(buffered)) >= length {
		return string(buffered[:length]), nil
	}

	var body bytes.Buffer
	body.Write(buffered)

	remaining := length - int64(len(buffered))
	if _, err := io.CopyN(&body, r, remaining); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}

		return "", errors.Wrapf(err, "read body of %d bytes", length)
	}

	return body.String(), nil
}
