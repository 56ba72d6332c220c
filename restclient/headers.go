package restclient

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// HeaderSource produces headers for each outgoing request. Sources run
// once per call, after per-call headers are applied; their values win on
// name collisions.
type HeaderSource interface {
	Headers(ctx context.Context) (map[string]string, error)
}

// HeaderFunc adapts a function to a HeaderSource.
type HeaderFunc func(ctx context.Context) (map[string]string, error)

// Headers implements HeaderSource.
func (f HeaderFunc) Headers(ctx context.Context) (map[string]string, error) {
	return f(ctx)
}

// StaticHeaders creates a HeaderSource emitting a fixed header set.
func StaticHeaders(headers map[string]string) HeaderSource {
	return HeaderFunc(func(context.Context) (map[string]string, error) {
		return headers, nil
	})
}

// BearerToken creates a HeaderSource setting a bearer Authorization header.
func BearerToken(token string) HeaderSource {
	return StaticHeaders(map[string]string{"Authorization": "Bearer " + token})
}

// BasicAuth creates a HeaderSource setting an HTTP basic Authorization header.
func BasicAuth(username, password string) HeaderSource {
	credentials := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return StaticHeaders(map[string]string{"Authorization": "Basic " + credentials})
}

// APIKey creates a HeaderSource setting an API key header.
// An empty name defaults to "X-API-Key".
func APIKey(name, key string) HeaderSource {
	if name == "" {
		name = "X-API-Key"
	}
	return StaticHeaders(map[string]string{name: key})
}

// cachedToken caches a fetched bearer token until its JWT exp claim
// nears expiry.
type cachedToken struct {
	fetch  func(ctx context.Context) (string, error)
	leeway time.Duration

	mu     sync.Mutex
	token  string
	expiry time.Time
}

// CachedToken creates a HeaderSource that fetches a bearer token on first
// use and refreshes it once the token's exp claim is within leeway of
// expiry. Opaque (non-JWT) tokens and tokens without an exp claim are
// cached indefinitely. Concurrent callers share one refresh.
func CachedToken(fetch func(ctx context.Context) (string, error), leeway time.Duration) HeaderSource {
	return &cachedToken{fetch: fetch, leeway: leeway}
}

func (c *cachedToken) Headers(ctx context.Context) (map[string]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stale() {
		token, err := c.fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch token: %w", err)
		}
		c.token = token
		c.expiry = tokenExpiry(token)
	}

	return map[string]string{"Authorization": "Bearer " + c.token}, nil
}

// stale reports whether the cached token is missing or near expiry.
// Callers must hold the mutex.
func (c *cachedToken) stale() bool {
	if c.token == "" {
		return true
	}
	if c.expiry.IsZero() {
		return false
	}
	return !time.Now().Before(c.expiry.Add(-c.leeway))
}

// tokenExpiry reads the exp claim without verifying the signature.
// Returns the zero time when the token is not a JWT or carries no exp.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
