package wcapi

import (
	"errors"
	"fmt"
)

// Sentinel errors for classifying failures with errors.Is. Every error
// returned by this package matches exactly one of these.
var (
	// ErrConfig indicates invalid credentials or options at construction.
	ErrConfig = errors.New("invalid client configuration")

	// ErrTransport indicates the underlying transport failed before a
	// response could be read.
	ErrTransport = errors.New("transport failure")

	// ErrInvalidResponse indicates the response body contained no decodable
	// JSON object after sanitization.
	ErrInvalidResponse = errors.New("invalid response body")

	// ErrAPI indicates the server returned a non-success status code.
	ErrAPI = errors.New("api error")
)

// ConfigError reports a construction-time failure. It is returned only by
// NewClient, never during a call.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Reason, e.Err)
	}
	return "configuration error: " + e.Reason
}

func (e *ConfigError) Unwrap() error { return e.Err }

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// TransportError reports a failure of the underlying transport. Request is
// the request that was attempted; Response is nil unless a partial response
// was available.
type TransportError struct {
	Request  *Request
	Response *Response
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// ResponseDecodeError reports a response body with no decodable JSON object.
// It carries the full request and response for diagnostics.
type ResponseDecodeError struct {
	Request  *Request
	Response *Response
}

func (e *ResponseDecodeError) Error() string {
	return fmt.Sprintf("invalid response body: no decodable JSON object (status %d)", e.Response.StatusCode)
}

func (e *ResponseDecodeError) Is(target error) bool { return target == ErrInvalidResponse }

// APIError reports a response that decoded successfully but carried a
// non-success status code. Message and Code are extracted from the error
// payload when its shape is recognized, and are empty otherwise.
type APIError struct {
	Message    string
	Code       string
	StatusCode int
	Request    *Request
	Response   *Response
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: %s [%s]", e.Message, e.Code)
}

func (e *APIError) Is(target error) bool { return target == ErrAPI }
