package wcapi

import "strings"

// Response is a received response. It is constructed exactly once per call,
// immediately after transport execution completes, and is read-only
// afterwards.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// newResponse builds a Response from the transport's raw result, parsing the
// wire header block into a header map.
func newResponse(raw *RawResult) *Response {
	return &Response{
		StatusCode: raw.StatusCode,
		Headers:    parseHeaderBlock(raw.HeaderBlock),
		Body:       raw.Body,
	}
}

// parseHeaderBlock parses a raw wire header block. The first line is the
// status line and is excluded from the map. Keys keep the casing they
// arrived with; duplicate keys are last-write-wins.
func parseHeaderBlock(block string) map[string]string {
	headers := make(map[string]string)
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		if i == 0 || line == "" {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		headers[key] = strings.TrimSpace(value)
	}
	return headers
}
