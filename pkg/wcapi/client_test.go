package wcapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientValidation(t *testing.T) {
	creds := Credentials{ConsumerKey: "ck", ConsumerSecret: "cs"}

	t.Run("ValidConstruction", func(t *testing.T) {
		c, err := NewClient("https://shop.example", creds, Options{})
		require.NoError(t, err)
		assert.NotNil(t, c)
		assert.Nil(t, c.LastRequest())
		assert.Nil(t, c.LastResponse())
	})

	t.Run("MissingCredentials", func(t *testing.T) {
		_, err := NewClient("https://shop.example", Credentials{}, Options{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConfig)
	})

	t.Run("BadScheme", func(t *testing.T) {
		_, err := NewClient("ftp://shop.example", creds, Options{})
		assert.ErrorIs(t, err, ErrConfig)
	})

	t.Run("NoHost", func(t *testing.T) {
		_, err := NewClient("https://", creds, Options{})
		assert.ErrorIs(t, err, ErrConfig)
	})

	t.Run("InvalidPrefix", func(t *testing.T) {
		_, err := NewClient("https://shop.example", creds, Options{APIPrefix: "wc-api"})
		assert.ErrorIs(t, err, ErrConfig)
	})
}

// newStoreClient points a client at an httptest server. The server URL is
// plain http, so every request goes through the OAuth signing path.
func newStoreClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, Credentials{ConsumerKey: "ck", ConsumerSecret: "cs"}, Options{})
	require.NoError(t, err)
	return c, server
}

func TestClientGet(t *testing.T) {
	c, _ := newStoreClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wc/v3/products", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "publish", q.Get("status"))
		assert.NotEmpty(t, q.Get("oauth_signature"))
		assert.Equal(t, "HMAC-SHA256", q.Get("oauth_signature_method"))

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"products":[]}`))
	})

	payload, err := c.Get(context.Background(), "products", map[string]string{"status": "publish"})
	require.NoError(t, err)
	assert.Contains(t, payload, "products")

	require.NotNil(t, c.LastRequest())
	assert.Equal(t, http.MethodGet, c.LastRequest().Method)
	require.NotNil(t, c.LastResponse())
	assert.Equal(t, http.StatusOK, c.LastResponse().StatusCode)
}

func TestClientPost(t *testing.T) {
	c, _ := newStoreClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"product":{"id":12,"name":"Widget"}}`))
	})

	payload, err := c.Post(context.Background(), "products", map[string]any{"name": "Widget"})
	require.NoError(t, err)
	assert.Contains(t, payload, "product")
}

func TestClientAPIError(t *testing.T) {
	c, _ := newStoreClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"errors":[{"message":"No route","code":"rest_no_route"}]}`))
	})

	_, err := c.Get(context.Background(), "nope", nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "No route", apiErr.Message)
	assert.Equal(t, "rest_no_route", apiErr.Code)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.NotNil(t, apiErr.Request)
	assert.NotNil(t, apiErr.Response)

	// Introspection state survives the failed call.
	assert.NotNil(t, c.LastResponse())
}

func TestClientTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c, err := NewClient(url, Credentials{ConsumerKey: "ck", ConsumerSecret: "cs"}, Options{})
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "products", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.NotNil(t, transportErr.Request)
	assert.Nil(t, transportErr.Response)
	assert.Nil(t, c.LastResponse())
}

func TestClientInvalidResponseBody(t *testing.T) {
	c, _ := newStoreClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("maintenance page"))
	})

	_, err := c.Get(context.Background(), "products", nil)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClientBodySanitizationEndToEnd(t *testing.T) {
	c, _ := newStoreClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<div>cache notice</div>{\"a\":1}"))
	})

	payload, err := c.Get(context.Background(), "products", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1)}, payload)
}

func TestClientSecretNeverInURLOverOAuth(t *testing.T) {
	c, _ := newStoreClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("consumer_secret"), "consumer secret leaked into query")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	})

	_, err := c.Get(context.Background(), "products", nil)
	require.NoError(t, err)
}

func TestWithTransport(t *testing.T) {
	stub := &stubTransport{
		result: &RawResult{
			StatusCode:  http.StatusOK,
			HeaderBlock: "HTTP/1.1 200 OK\nContent-Type: application/json\n",
			Body:        []byte(`{"via":"stub"}`),
		},
	}

	c, err := NewClient("https://shop.example", Credentials{ConsumerKey: "ck", ConsumerSecret: "cs"}, Options{}, WithTransport(stub))
	require.NoError(t, err)

	payload, err := c.Get(context.Background(), "products", nil)
	require.NoError(t, err)
	assert.Equal(t, "stub", payload["via"])
	assert.Equal(t, 1, stub.calls)
}

type stubTransport struct {
	result *RawResult
	err    error
	calls  int
	last   *Request
}

func (s *stubTransport) Execute(ctx context.Context, req *Request) (*RawResult, error) {
	s.calls++
	s.last = req
	return s.result, s.err
}
