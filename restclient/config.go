package restclient

import (
	"time"

	"github.com/kbukum/restkit/security"
	"github.com/kbukum/restkit/validation"
)

const defaultTimeout = 60 * time.Second

// Config configures a Controller.
type Config struct {
	// BaseURL is the address all request paths are appended to.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`

	// Timeout is the default request timeout. Defaults to 60s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"min=0"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// UserAgent overrides the default User-Agent header.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// RequestID stamps outgoing requests with an X-Request-ID header
	// when the caller did not set one.
	RequestID bool `yaml:"request_id" mapstructure:"request_id"`

	// TLS configures transport security, including the trust policy.
	TLS *security.TLSConfig `yaml:"tls" mapstructure:"tls"`

	// H2C enables HTTP/2 over cleartext TCP (prior-knowledge mode).
	H2C bool `yaml:"h2c" mapstructure:"h2c"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return err
		}
	}
	return nil
}
