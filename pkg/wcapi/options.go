package wcapi

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultAPIVersion is the REST API version used when none is configured.
	DefaultAPIVersion = "v3"

	// DefaultAPIPrefix is the versioned API path segment appended to the store URL.
	DefaultAPIPrefix = "wp-json/wc/"

	// DefaultTimeout applies to both connection establishment and the full transfer.
	DefaultTimeout = 15 * time.Second

	// DefaultUserAgent identifies this client on the wire.
	DefaultUserAgent = "WooCommerce-API-Client-Go/1.0"
)

// Credentials holds the consumer key pair issued by the store.
// Values are supplied once at client construction and are never logged.
type Credentials struct {
	ConsumerKey    string `validate:"required"`
	ConsumerSecret string `validate:"required"`
}

// Options configures request building and transport behavior. The zero value is
// usable: Defaulted fills in the API version, prefix, timeout, and user agent,
// and enables TLS verification. Options are validated once at construction and
// treated as immutable afterwards.
type Options struct {
	// APIVersion is the REST API version path segment, e.g. "v3".
	APIVersion string `validate:"required"`

	// APIPrefix is the path segment between the store root and the version,
	// e.g. "wp-json/wc/". A trailing slash is required.
	APIPrefix string `validate:"required,endswith=/"`

	// UserAgent is sent on every request.
	UserAgent string `validate:"required"`

	// QueryStringAuth embeds consumer_key/consumer_secret as query parameters
	// on secure URLs instead of an Authorization header.
	QueryStringAuth bool

	// DisableCertValidation skips TLS certificate verification on the default
	// transport. The zero value verifies certificates.
	DisableCertValidation bool

	// MethodOverrideQuery tunnels PUT/DELETE as POST with a _method query
	// parameter, for servers that reject those verbs.
	MethodOverrideQuery bool

	// MethodOverrideHeader tunnels PUT/DELETE as POST with an
	// X-HTTP-Method-Override header.
	MethodOverrideHeader bool

	// Timeout applies to the whole call: connect, send, receive.
	Timeout time.Duration `validate:"min=0"`
}

// Defaulted returns a copy of o with unset fields replaced by defaults.
func (o Options) Defaulted() Options {
	if o.APIVersion == "" {
		o.APIVersion = DefaultAPIVersion
	}
	if o.APIPrefix == "" {
		o.APIPrefix = DefaultAPIPrefix
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

// normalizedPrefix trims a leading slash so the prefix joins cleanly onto
// the store root, which always carries a trailing slash.
func (o Options) normalizedPrefix() string {
	return strings.TrimPrefix(o.APIPrefix, "/")
}

var optionsValidator *validator.Validate

// V returns the package-level validator instance.
func V() *validator.Validate {
	if optionsValidator == nil {
		optionsValidator = validator.New(validator.WithRequiredStructEnabled())
	}
	return optionsValidator
}
