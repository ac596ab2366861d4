package wcapi

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Param is a single query parameter. Parameters are kept as an ordered slice
// rather than a map: construction order is significant for OAuth-signed
// requests and must survive into the encoded query string.
type Param struct {
	Key   string
	Value string
}

// Request is a fully-built outbound request. It is constructed once per call
// and never mutated afterwards.
type Request struct {
	URL     string // full URL including the encoded query string
	Method  string // wire method, after any override tunneling
	Params  []Param
	Headers map[string]string
	Body    []byte
}

// builder composes endpoint, method, payload, and signer output into a
// Request. It performs no network I/O.
type builder struct {
	storeURL string // normalized with trailing slash
	creds    Credentials
	opts     Options
	signer   *signer
}

func newBuilder(storeURL string, creds Credentials, opts Options) *builder {
	if !strings.HasSuffix(storeURL, "/") {
		storeURL += "/"
	}
	return &builder{
		storeURL: storeURL,
		creds:    creds,
		opts:     opts,
		signer:   newSigner(creds),
	}
}

// isSecure reports whether the store URL uses an encrypted scheme. The auth
// mode for every request is driven solely by this and the QueryStringAuth
// option.
func (b *builder) isSecure() bool {
	return strings.HasPrefix(b.storeURL, "https://")
}

func (b *builder) baseURL(endpoint string) string {
	return b.storeURL + b.opts.normalizedPrefix() + b.opts.APIVersion + "/" + strings.TrimPrefix(endpoint, "/")
}

// build assembles the request for one call. data is JSON-serialized into the
// body for POST, PUT, and DELETE; GET never carries a body.
func (b *builder) build(method, endpoint string, data any, params map[string]string) (*Request, error) {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return nil, fmt.Errorf("unsupported method %q", method)
	}
	if err := checkReservedParams(params); err != nil {
		return nil, err
	}
	if data != nil && method == http.MethodGet {
		return nil, fmt.Errorf("GET request cannot carry a body")
	}

	// Caller parameters first, in sorted order for a stable query string.
	ordered := make([]Param, 0, len(params)+8)
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		ordered = append(ordered, Param{Key: k, Value: params[k]})
	}

	headers := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
		"User-Agent":   b.opts.UserAgent,
	}

	// Override tunneling rewrites the wire method before signing so the
	// signature matches what the server actually receives.
	wireMethod := method
	if method == http.MethodPut || method == http.MethodDelete {
		switch {
		case b.opts.MethodOverrideQuery:
			ordered = append(ordered, Param{Key: "_method", Value: method})
			wireMethod = http.MethodPost
		case b.opts.MethodOverrideHeader:
			headers["X-HTTP-Method-Override"] = method
			wireMethod = http.MethodPost
		}
	}

	switch {
	case b.isSecure() && b.opts.QueryStringAuth:
		ordered = append(ordered, b.signer.queryAuthParams()...)
	case b.isSecure():
		headers["Authorization"] = "Basic " + basicAuth(b.creds)
	default:
		ordered = b.signer.sign(wireMethod, b.baseURL(endpoint), ordered)
	}

	u := b.baseURL(endpoint)
	if len(ordered) > 0 {
		u += "?" + encodeParams(ordered)
	}

	var body []byte
	if data != nil {
		var err error
		body, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	return &Request{
		URL:     u,
		Method:  wireMethod,
		Params:  ordered,
		Headers: headers,
		Body:    body,
	}, nil
}

// checkReservedParams rejects caller parameters that collide with the
// authentication parameter namespace. Collisions are a caller precondition
// violation, not something to resolve silently.
func checkReservedParams(params map[string]string) error {
	for k := range params {
		if k == "consumer_key" || k == "consumer_secret" || strings.HasPrefix(k, "oauth_") {
			return fmt.Errorf("parameter %q collides with a reserved authentication parameter", k)
		}
	}
	return nil
}

// encodeParams encodes parameters in their construction order using RFC 3986
// percent encoding. Encoding must match what the signer signed, so the
// standard library's form encoding (space as '+', sorted keys) is not usable
// here.
func encodeParams(params []Param) string {
	var sb strings.Builder
	for i, p := range params {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(percentEncode(p.Key))
		sb.WriteByte('=')
		sb.WriteString(percentEncode(p.Value))
	}
	return sb.String()
}

func basicAuth(creds Credentials) string {
	return base64.StdEncoding.EncodeToString([]byte(creds.ConsumerKey + ":" + creds.ConsumerSecret))
}
