package restclient

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestStaticHeaders(t *testing.T) {
	src := StaticHeaders(map[string]string{"X-Tenant": "acme"})
	h, err := src.Headers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h["X-Tenant"] != "acme" {
		t.Errorf("expected X-Tenant=acme, got %v", h)
	}
}

func TestBearerToken(t *testing.T) {
	h, err := BearerToken("tok-123").Headers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h["Authorization"] != "Bearer tok-123" {
		t.Errorf("unexpected Authorization: %q", h["Authorization"])
	}
}

func TestBasicAuth(t *testing.T) {
	h, err := BasicAuth("user", "pass").Headers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// base64("user:pass")
	if h["Authorization"] != "Basic dXNlcjpwYXNz" {
		t.Errorf("unexpected Authorization: %q", h["Authorization"])
	}
}

func TestAPIKey(t *testing.T) {
	h, err := APIKey("X-Api-Token", "k1").Headers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h["X-Api-Token"] != "k1" {
		t.Errorf("unexpected headers: %v", h)
	}

	h2, _ := APIKey("", "k2").Headers(context.Background())
	if h2["X-API-Key"] != "k2" {
		t.Errorf("expected default header name, got %v", h2)
	}
}

func TestHeaderFunc(t *testing.T) {
	src := HeaderFunc(func(ctx context.Context) (map[string]string, error) {
		return map[string]string{"X-Trace": "abc"}, nil
	})
	h, err := src.Headers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h["X-Trace"] != "abc" {
		t.Errorf("unexpected headers: %v", h)
	}
}

// signedToken builds a real JWT with the given expiry for cache tests.
func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "svc",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestCachedToken_FetchesOnce(t *testing.T) {
	var calls int32
	fresh := signedToken(t, time.Now().Add(time.Hour))
	src := CachedToken(func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return fresh, nil
	}, time.Minute)

	for i := 0; i < 3; i++ {
		h, err := src.Headers(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if h["Authorization"] != "Bearer "+fresh {
			t.Errorf("unexpected Authorization: %q", h["Authorization"])
		}
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("expected 1 fetch, got %d", got)
	}
}

func TestCachedToken_RefreshesNearExpiry(t *testing.T) {
	var calls int32
	src := CachedToken(func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		// Always returns a token already inside the leeway window.
		return signedToken(t, time.Now().Add(10*time.Second)), nil
	}, time.Minute)

	if _, err := src.Headers(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := src.Headers(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("expected refresh on each call, got %d fetches", got)
	}
}

func TestCachedToken_OpaqueTokenCachedForever(t *testing.T) {
	var calls int32
	src := CachedToken(func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "opaque-token", nil
	}, time.Minute)

	for i := 0; i < 3; i++ {
		h, err := src.Headers(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if h["Authorization"] != "Bearer opaque-token" {
			t.Errorf("unexpected Authorization: %q", h["Authorization"])
		}
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("expected 1 fetch for opaque token, got %d", got)
	}
}

func TestCachedToken_FetchError(t *testing.T) {
	src := CachedToken(func(ctx context.Context) (string, error) {
		return "", fmt.Errorf("auth server unavailable")
	}, time.Minute)

	if _, err := src.Headers(context.Background()); err == nil {
		t.Error("expected fetch error to propagate")
	}
}

func TestCachedToken_SharedRefresh(t *testing.T) {
	var calls int32
	fresh := signedToken(t, time.Now().Add(time.Hour))
	src := CachedToken(func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(10 * time.Millisecond)
		return fresh, nil
	}, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := src.Headers(context.Background()); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("expected concurrent callers to share one fetch, got %d", got)
	}
}
