package wcapi

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// signatureMethod is the fixed HMAC digest policy for OAuth-signed requests.
const signatureMethod = "HMAC-SHA256"

// signer produces authentication parameters for a request. It performs no
// network I/O and, for fixed nonce and timestamp, its output is a pure
// function of its inputs.
type signer struct {
	creds Credentials

	// nonce and now are injectable for deterministic tests.
	nonce func() string
	now   func() time.Time
}

func newSigner(creds Credentials) *signer {
	return &signer{
		creds: creds,
		nonce: uuid.NewString,
		now:   time.Now,
	}
}

// queryAuthParams returns the credential parameters appended to the query
// string when query-string auth is active over a secure channel.
func (s *signer) queryAuthParams() []Param {
	return []Param{
		{Key: "consumer_key", Value: s.creds.ConsumerKey},
		{Key: "consumer_secret", Value: s.creds.ConsumerSecret},
	}
}

// sign computes an OAuth 1.0a style signature over method, base URL, and the
// full parameter set, and returns the parameters with the oauth_* set and
// oauth_signature appended. The returned slice preserves construction order;
// sorting happens only inside the signature base string.
func (s *signer) sign(method, baseURL string, params []Param) []Param {
	signed := make([]Param, 0, len(params)+6)
	signed = append(signed, params...)
	signed = append(signed,
		Param{Key: "oauth_consumer_key", Value: s.creds.ConsumerKey},
		Param{Key: "oauth_nonce", Value: s.nonce()},
		Param{Key: "oauth_signature_method", Value: signatureMethod},
		Param{Key: "oauth_timestamp", Value: strconv.FormatInt(s.now().Unix(), 10)},
		Param{Key: "oauth_version", Value: "1.0"},
	)
	signed = append(signed, Param{Key: "oauth_signature", Value: s.signature(method, baseURL, signed)})
	return signed
}

// signature builds the OAuth signature base string and computes the keyed
// HMAC over it. This is a 2-legged flow: the signing key carries no token
// secret, only the percent-encoded consumer secret and a trailing ampersand.
func (s *signer) signature(method, baseURL string, params []Param) string {
	encoded := make([]Param, len(params))
	for i, p := range params {
		encoded[i] = Param{Key: percentEncode(p.Key), Value: percentEncode(p.Value)}
	}
	sort.Slice(encoded, func(i, j int) bool {
		if encoded[i].Key != encoded[j].Key {
			return encoded[i].Key < encoded[j].Key
		}
		return encoded[i].Value < encoded[j].Value
	})

	var ps strings.Builder
	for i, p := range encoded {
		if i > 0 {
			ps.WriteByte('&')
		}
		ps.WriteString(p.Key)
		ps.WriteByte('=')
		ps.WriteString(p.Value)
	}

	base := strings.ToUpper(method) + "&" + percentEncode(baseURL) + "&" + percentEncode(ps.String())

	mac := hmac.New(sha256.New, []byte(percentEncode(s.creds.ConsumerSecret)+"&"))
	mac.Write([]byte(base))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// percentEncode applies RFC 3986 percent encoding. Unreserved characters
// (A-Z a-z 0-9 - . _ ~) pass through; every other byte is escaped as %XX
// with uppercase hex. Space never encodes as '+'.
func percentEncode(s string) string {
	const upperhex = "0123456789ABCDEF"
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperhex[c>>4])
		sb.WriteByte(upperhex[c&0x0F])
	}
	return sb.String()
}

func isUnreserved(c byte) bool {
	return c >= 'A' && c <= 'Z' ||
		c >= 'a' && c <= 'z' ||
		c >= '0' && c <= '9' ||
		c == '-' || c == '.' || c == '_' || c == '~'
}
