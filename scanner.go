package rawhttp

var (
	requestLineDelimiter = []byte{'\r', '\n'}
	headersDelimiter     = []byte{'\r', '\n', '\r', '\n'}
)

// IndexOf returns the index of the first occurrence of target in buf[start:end], or -1 if there is none.
// A match must lie entirely before end; start and end are clamped to the buffer.
func IndexOf(buf, target []byte, start, end int) int {
	if end > len(buf) {
		end = len(buf)
	}

	if start < 0 {
		start = 0
	}

	if len(target) == 0 {
		return -1
	}

outer:
	for i := start; i < end-len(target)+1; i++ {
		for j := range target {
			if buf[i+j] != target[j] {
				continue outer
			}
		}

		return i
	}

	return -1
}
