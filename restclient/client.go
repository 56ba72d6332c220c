package restclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/kbukum/restkit/dynjson"
	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/observability"
	"github.com/kbukum/restkit/security"
)

// Controller issues REST calls against a fixed base address. A single
// instance owns one transport and is intended to be reused for all calls
// to the same backend. All state is set at construction time and read
// thereafter, so concurrent calls need no locking.
type Controller struct {
	base    *url.URL
	client  *http.Client
	config  Config
	source  HeaderSource
	log     *logger.Logger
	metrics *observability.Metrics
	service string

	instrument bool
}

// Option configures a Controller at construction time.
type Option func(*Controller)

// WithDefaultHeaders sets headers applied to every request.
func WithDefaultHeaders(headers map[string]string) Option {
	return func(c *Controller) { c.config.Headers = headers }
}

// WithDefaultTimeout sets the default per-request timeout.
func WithDefaultTimeout(d time.Duration) Option {
	return func(c *Controller) { c.config.Timeout = d }
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Controller) { c.config.UserAgent = ua }
}

// WithRequestID stamps outgoing requests with a generated X-Request-ID
// header when the caller did not set one.
func WithRequestID() Option {
	return func(c *Controller) { c.config.RequestID = true }
}

// WithTLS sets the transport security configuration.
func WithTLS(tlsCfg *security.TLSConfig) Option {
	return func(c *Controller) { c.config.TLS = tlsCfg }
}

// WithSelfSignedSameHost accepts a self-signed certificate presented by
// the controller's own base host. Trust never extends to any other host,
// including after a redirect.
func WithSelfSignedSameHost() Option {
	return func(c *Controller) {
		if c.config.TLS == nil {
			c.config.TLS = &security.TLSConfig{}
		}
		c.config.TLS.Trust = security.TrustSelfSignedSameHost
	}
}

// WithH2C enables cleartext HTTP/2 (prior-knowledge mode).
func WithH2C() Option {
	return func(c *Controller) { c.config.H2C = true }
}

// WithLogger sets the diagnostic logger. Logging is off by default.
func WithLogger(l *logger.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithHeaderSource sets a per-request header generator. Generated
// headers override same-named per-call headers.
func WithHeaderSource(src HeaderSource) Option {
	return func(c *Controller) { c.source = src }
}

// WithHTTPClient replaces the controller's HTTP client. TLS and H2C
// settings are ignored when a custom client is supplied.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Controller) { c.client = hc }
}

// WithInstrumentation enables a span and metric recording per request.
// metrics may be nil to record spans only.
func WithInstrumentation(serviceName string, metrics *observability.Metrics) Option {
	return func(c *Controller) {
		c.instrument = true
		c.service = serviceName
		c.metrics = metrics
	}
}

// New creates a Controller for the given base URL.
func New(baseURL string, opts ...Option) (*Controller, error) {
	return FromConfig(Config{BaseURL: baseURL}, opts...)
}

// NewFromURL creates a Controller from an already-parsed URL.
func NewFromURL(u *url.URL, opts ...Option) (*Controller, error) {
	if u == nil {
		return nil, fmt.Errorf("restclient: nil base URL")
	}
	return FromConfig(Config{BaseURL: u.String()}, opts...)
}

// FromConfig creates a Controller from a full configuration, typically
// loaded from a file. Options are applied on top of the configuration.
func FromConfig(cfg Config, opts ...Option) (*Controller, error) {
	c := &Controller{
		config: cfg,
		log:    logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.config.ApplyDefaults()
	if err := c.config.Validate(); err != nil {
		return nil, err
	}

	base, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("restclient: invalid base URL %q: %w", c.config.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("restclient: base URL %q must be absolute", c.config.BaseURL)
	}
	if c.config.H2C && base.Scheme != "http" {
		return nil, fmt.Errorf("restclient: h2c requires an http base URL, got %q", c.config.BaseURL)
	}
	c.base = base

	if c.client == nil {
		transport, err := newTransport(c.config, base.Hostname())
		if err != nil {
			return nil, err
		}
		c.client = &http.Client{Transport: transport}
	}

	// Relaxed verification must never follow a redirect off the base host.
	if c.config.TLS != nil && c.config.TLS.Trust == security.TrustSelfSignedSameHost && c.client.CheckRedirect == nil {
		c.client.CheckRedirect = sameHostRedirectPolicy(base.Hostname())
	}

	return c, nil
}

// Get performs a GET request returning the body as a dynamic JSON value.
func (c *Controller) Get(ctx context.Context, path string, opts ...RequestOption) (*Result[dynjson.Value], error) {
	return Get(ctx, c, JSON(), path, opts...)
}

// Post performs a POST request returning the body as a dynamic JSON value.
func (c *Controller) Post(ctx context.Context, path string, body any, opts ...RequestOption) (*Result[dynjson.Value], error) {
	return Post(ctx, c, JSON(), path, body, opts...)
}

// Put performs a PUT request returning the body as a dynamic JSON value.
func (c *Controller) Put(ctx context.Context, path string, body any, opts ...RequestOption) (*Result[dynjson.Value], error) {
	return Put(ctx, c, JSON(), path, body, opts...)
}

// Patch performs a PATCH request returning the body as a dynamic JSON value.
func (c *Controller) Patch(ctx context.Context, path string, body any, opts ...RequestOption) (*Result[dynjson.Value], error) {
	return Patch(ctx, c, JSON(), path, body, opts...)
}

// Delete performs a DELETE request returning the body as a dynamic JSON
// value. body may be nil.
func (c *Controller) Delete(ctx context.Context, path string, body any, opts ...RequestOption) (*Result[dynjson.Value], error) {
	return Delete(ctx, c, JSON(), path, body, opts...)
}

// CheckHealth probes the base endpoint with a HEAD request and reports
// the outcome. Implements observability.HealthChecker.
func (c *Controller) CheckHealth(ctx context.Context) observability.Health {
	health := observability.Health{
		Name:    c.base.Host,
		Status:  observability.HealthStatusUp,
		Details: map[string]string{"url": c.base.String()},
	}

	result, err := do(ctx, c, Void(), http.MethodHead, "", nil)
	switch {
	case err != nil:
		health.Status = observability.HealthStatusDown
		health.Message = err.Error()
	case result.StatusCode >= 500:
		health.Status = observability.HealthStatusDegraded
		health.Message = fmt.Sprintf("HTTP %d", result.StatusCode)
	}
	return health
}

// BaseURL returns a copy of the controller's base URL.
func (c *Controller) BaseURL() *url.URL {
	u := *c.base
	return &u
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (c *Controller) Unwrap() *http.Client {
	return c.client
}
