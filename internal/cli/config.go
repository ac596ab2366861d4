package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Fashionalia/wc-api-go/pkg/wcapi"
)

// DefaultConfigFile is the default name of the config file
const DefaultConfigFile = "config.yaml"

// Environment variables recognized for credentials and store URL. They take
// precedence over the config file so secrets can stay out of it.
const (
	envStoreURL       = "WCAPI_STORE_URL"
	envConsumerKey    = "WCAPI_CONSUMER_KEY"
	envConsumerSecret = "WCAPI_CONSUMER_SECRET"
)

// Config represents the configuration for the wcapi CLI. It contains store
// connection details and consumer credentials.
type Config struct {
	// Version of the configuration file format
	Version string `yaml:"version"`
	// StoreURL is the root URL of the store
	StoreURL string `yaml:"store_url"`
	// ConsumerKey is the API consumer key
	ConsumerKey string `yaml:"consumer_key"`
	// ConsumerSecret is the API consumer secret
	ConsumerSecret string `yaml:"consumer_secret"`
	// APIVersion selects the REST API version path segment, e.g. "v3"
	APIVersion string `yaml:"api_version"`
	// QueryStringAuth embeds credentials as query parameters over https
	QueryStringAuth bool `yaml:"query_string_auth"`
	// DisableCertValidation skips TLS certificate verification
	DisableCertValidation bool `yaml:"disable_cert_validation"`
	// MethodOverrideQuery tunnels PUT/DELETE as POST with a _method parameter
	MethodOverrideQuery bool `yaml:"method_override_query"`
	// MethodOverrideHeader tunnels PUT/DELETE as POST with an override header
	MethodOverrideHeader bool `yaml:"method_override_header"`
	// TimeoutSeconds bounds each call end to end
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

var config *Config

// GetDefaultConfigPath returns the default path for the config file
// It uses the OS-specific config directory (e.g., ~/.config/wcapi on Linux)
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user config directory")
	}
	return filepath.Join(configDir, "wcapi", DefaultConfigFile), nil
}

// LoadConfig loads the configuration from the specified file, then applies
// environment overrides. A missing config file is fine as long as the
// environment supplies the store URL and credentials.
func LoadConfig(file string) error {
	// Pull in a local .env if present so credentials can live next to the
	// working directory instead of the global config.
	_ = godotenv.Load()

	explicit := file != ""
	if file == "" {
		var err error
		file, err = GetDefaultConfigPath()
		if err != nil {
			return err
		}
	}

	var c Config
	raw, err := os.ReadFile(file)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &c); err != nil {
			return errors.Wrap(err, "unable to parse config file")
		}
	case os.IsNotExist(err) && !explicit:
		// fall through to environment-only configuration
	default:
		return errors.Wrap(err, "unable to read config file")
	}

	if v := os.Getenv(envStoreURL); v != "" {
		c.StoreURL = v
	}
	if v := os.Getenv(envConsumerKey); v != "" {
		c.ConsumerKey = v
	}
	if v := os.Getenv(envConsumerSecret); v != "" {
		c.ConsumerSecret = v
	}

	if c.StoreURL == "" {
		return errors.New("store_url is required (config file or " + envStoreURL + ")")
	}
	if c.ConsumerKey == "" || c.ConsumerSecret == "" {
		return errors.New("consumer credentials are required (config file, .env, or environment)")
	}

	config = &c
	return nil
}

// GetConfig returns the current configuration
func GetConfig() *Config {
	return config
}

// newAPIClient builds a wcapi client from the loaded configuration.
func newAPIClient() (*wcapi.Client, error) {
	c := GetConfig()
	if c == nil {
		return nil, errors.New("configuration not loaded")
	}

	opts := wcapi.Options{
		APIVersion:            c.APIVersion,
		QueryStringAuth:       c.QueryStringAuth,
		DisableCertValidation: c.DisableCertValidation,
		MethodOverrideQuery:   c.MethodOverrideQuery,
		MethodOverrideHeader:  c.MethodOverrideHeader,
		Timeout:               time.Duration(c.TimeoutSeconds) * time.Second,
	}

	client, err := wcapi.NewClient(c.StoreURL, wcapi.Credentials{
		ConsumerKey:    c.ConsumerKey,
		ConsumerSecret: c.ConsumerSecret,
	}, opts, wcapi.WithLogger(newLogger()))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create API client")
	}
	return client, nil
}
