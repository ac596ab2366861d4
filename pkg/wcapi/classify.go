package wcapi

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// classify decodes the response body and disambiguates success from failure.
// Statuses 200, 201, and 202 return the decoded payload; anything else
// becomes an APIError with message and code extracted from the error
// payload when its shape is recognized.
func classify(req *Request, resp *Response) (map[string]any, error) {
	obj, ok := extractJSONObject(resp.Body)
	if !ok {
		return nil, &ResponseDecodeError{Request: req, Response: resp}
	}

	var payload map[string]any
	if err := json.Unmarshal(obj, &payload); err != nil {
		return nil, &ResponseDecodeError{Request: req, Response: resp}
	}

	switch resp.StatusCode {
	case 200, 201, 202:
		return payload, nil
	}

	// Error payloads are not uniform across endpoints: some carry an error
	// list, some a single error object. Try the list shape first, fall back
	// to the singular shape, and default to empty strings when neither
	// matches.
	message := gjson.GetBytes(obj, "errors.0.message")
	code := gjson.GetBytes(obj, "errors.0.code")
	if !message.Exists() && !code.Exists() {
		message = gjson.GetBytes(obj, "errors.message")
		code = gjson.GetBytes(obj, "errors.code")
	}

	return nil, &APIError{
		Message:    message.String(),
		Code:       code.String(),
		StatusCode: resp.StatusCode,
		Request:    req,
		Response:   resp,
	}
}

// extractJSONObject returns the first balanced top-level {...} span in body.
// Response bodies can arrive wrapped in non-JSON noise such as PHP notices
// or caching-layer HTML, before and after the real payload. The scan is
// string-aware so braces inside JSON string values do not affect depth.
func extractJSONObject(body []byte) ([]byte, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(body); i++ {
		c := body[i]
		if start < 0 {
			if c == '{' {
				start = i
				depth = 1
			}
			continue
		}
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return body[start : i+1], true
			}
		}
	}
	return nil, false
}
