package wcapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classifyBody(t *testing.T, status int, body string) (map[string]any, error) {
	t.Helper()
	req := &Request{URL: "http://shop.example/wp-json/wc/v3/products", Method: "GET"}
	resp := &Response{StatusCode: status, Headers: map[string]string{}, Body: []byte(body)}
	return classify(req, resp)
}

func TestClassifySuccess(t *testing.T) {
	for _, status := range []int{200, 201, 202} {
		payload, err := classifyBody(t, status, `{"product":{"id":7}}`)
		require.NoError(t, err, "status %d", status)
		assert.Contains(t, payload, "product")
	}
}

func TestClassifyBodySanitization(t *testing.T) {
	t.Run("LeadingAndTrailingNoise", func(t *testing.T) {
		payload, err := classifyBody(t, 200, `<div>cache notice</div>{"a":1}<!-- trailer -->`)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": float64(1)}, payload)
	})

	t.Run("PHPNoticeBeforePayload", func(t *testing.T) {
		payload, err := classifyBody(t, 200, "Notice: Undefined index in plugin.php on line 3\n{\"ok\":true}")
		require.NoError(t, err)
		assert.Equal(t, true, payload["ok"])
	})

	t.Run("BracesInsideStringsDoNotTruncate", func(t *testing.T) {
		payload, err := classifyBody(t, 200, `{"note":"use {curly} braces"}`)
		require.NoError(t, err)
		assert.Equal(t, "use {curly} braces", payload["note"])
	})

	t.Run("NestedObjects", func(t *testing.T) {
		payload, err := classifyBody(t, 200, `junk{"a":{"b":{"c":3}}}junk`)
		require.NoError(t, err)
		assert.Contains(t, payload, "a")
	})
}

func TestClassifyMalformedBody(t *testing.T) {
	t.Run("NoJSONAtAll", func(t *testing.T) {
		_, err := classifyBody(t, 200, "not json at all")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidResponse)

		var decodeErr *ResponseDecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, 200, decodeErr.Response.StatusCode)
		assert.NotNil(t, decodeErr.Request)
	})

	t.Run("UnterminatedObject", func(t *testing.T) {
		_, err := classifyBody(t, 200, `{"a":1`)
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("BalancedButInvalidJSON", func(t *testing.T) {
		_, err := classifyBody(t, 200, `{not valid}`)
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("EmptyBody", func(t *testing.T) {
		_, err := classifyBody(t, 200, "")
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})
}

func TestClassifyErrorShapes(t *testing.T) {
	t.Run("ListShape", func(t *testing.T) {
		_, err := classifyBody(t, 404, `{"errors":[{"message":"m1","code":"c1"}]}`)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "m1", apiErr.Message)
		assert.Equal(t, "c1", apiErr.Code)
		assert.Equal(t, 404, apiErr.StatusCode)
	})

	t.Run("SingularShape", func(t *testing.T) {
		_, err := classifyBody(t, 400, `{"errors":{"message":"m2","code":"c2"}}`)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "m2", apiErr.Message)
		assert.Equal(t, "c2", apiErr.Code)
		assert.Equal(t, 400, apiErr.StatusCode)
	})

	t.Run("NumericCode", func(t *testing.T) {
		_, err := classifyBody(t, 400, `{"errors":[{"message":"m3","code":404}]}`)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "404", apiErr.Code)
	})

	t.Run("UnrecognizedShapeDefaultsToEmpty", func(t *testing.T) {
		_, err := classifyBody(t, 500, `{"failure":"boom"}`)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Empty(t, apiErr.Message)
		assert.Empty(t, apiErr.Code)
		assert.Equal(t, 500, apiErr.StatusCode)
		assert.ErrorIs(t, err, ErrAPI)
	})

	t.Run("SuccessBodyWithErrorStatus", func(t *testing.T) {
		// Any non-success status is an error even when the body decodes.
		_, err := classifyBody(t, 301, `{"product":{"id":7}}`)
		assert.ErrorIs(t, err, ErrAPI)
	})
}

func TestExtractJSONObject(t *testing.T) {
	t.Run("FirstTopLevelObjectWins", func(t *testing.T) {
		obj, ok := extractJSONObject([]byte(`{"a":1}{"b":2}`))
		require.True(t, ok)
		assert.Equal(t, `{"a":1}`, string(obj))
	})

	t.Run("EscapedQuotesInsideStrings", func(t *testing.T) {
		obj, ok := extractJSONObject([]byte(`{"a":"say \"}\" loudly"}`))
		require.True(t, ok)
		assert.Equal(t, `{"a":"say \"}\" loudly"}`, string(obj))
	})

	t.Run("NoObject", func(t *testing.T) {
		_, ok := extractJSONObject([]byte(`[1,2,3]`))
		assert.False(t, ok)
	})
}
