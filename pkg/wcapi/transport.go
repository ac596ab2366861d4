package wcapi

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"strings"
)

// RawResult is the unprocessed outcome of a transport execution. HeaderBlock
// is the raw wire header text: the status line first, then one Key: Value
// pair per line.
type RawResult struct {
	StatusCode  int
	HeaderBlock string
	Body        []byte
}

// Transport executes a fully-built request and returns the raw result.
// Implementations must respect the context and must not retry, follow
// redirects, or otherwise issue more than one request per call.
type Transport interface {
	Execute(ctx context.Context, req *Request) (*RawResult, error)
}

// httpTransport is the default Transport on net/http. One instance is owned
// by one Client; the underlying http.Client carries the configured timeout
// and TLS policy.
type httpTransport struct {
	client *http.Client
}

func newHTTPTransport(opts Options) *httpTransport {
	transport := &http.Transport{}
	if opts.DisableCertValidation {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}
	return &httpTransport{
		client: &http.Client{
			Transport: transport,
			Timeout:   opts.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Execute issues exactly one HTTP request and buffers the full response.
func (t *httpTransport) Execute(ctx context.Context, req *Request) (*RawResult, error) {
	var bodyReader io.Reader
	if len(req.Body) > 0 {
		bodyReader = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return nil, err
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &RawResult{
		StatusCode:  resp.StatusCode,
		HeaderBlock: headerBlock(resp),
		Body:        body,
	}, nil
}

// headerBlock reassembles the wire header block from the parsed response:
// status line first, then one line per header value.
func headerBlock(resp *http.Response) string {
	var sb strings.Builder
	sb.WriteString(resp.Proto)
	sb.WriteByte(' ')
	sb.WriteString(resp.Status)
	sb.WriteByte('\n')
	for key, values := range resp.Header {
		for _, value := range values {
			sb.WriteString(key)
			sb.WriteString(": ")
			sb.WriteString(value)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
