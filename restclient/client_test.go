package restclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/kbukum/restkit/observability"
)

func TestNew_InvalidBaseURL(t *testing.T) {
	tests := []string{
		"",
		"not a url",
		"/relative/path",
		"example.com/no-scheme",
	}
	for _, raw := range tests {
		if _, err := New(raw); err == nil {
			t.Errorf("New(%q): expected error", raw)
		}
	}
}

func TestNew_ValidBaseURL(t *testing.T) {
	c, err := New("https://api.example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.BaseURL().Host != "api.example.com" {
		t.Errorf("unexpected base host: %q", c.BaseURL().Host)
	}
	if c.config.Timeout != defaultTimeout {
		t.Errorf("expected default timeout %v, got %v", defaultTimeout, c.config.Timeout)
	}
}

func TestNewFromURL(t *testing.T) {
	u, err := url.Parse("https://api.example.com/v2")
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	c, err := NewFromURL(u)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.BaseURL().String(); got != "https://api.example.com/v2" {
		t.Errorf("unexpected base URL: %q", got)
	}

	if _, err := NewFromURL(nil); err == nil {
		t.Error("expected error for nil URL")
	}
}

func TestNew_H2CRequiresCleartext(t *testing.T) {
	if _, err := New("https://api.example.com", WithH2C()); err == nil {
		t.Error("expected error for h2c with https base URL")
	}
	if _, err := New("http://api.example.com", WithH2C()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestController_Get_JSONDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("expected Accept application/json, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"name": "Alice", "age": 30})
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := c.Get(context.Background(), "users/123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.StatusCode != 200 {
		t.Errorf("expected 200, got %d", res.StatusCode)
	}
	if name, ok := res.Data.Field("name").Str(); !ok || name != "Alice" {
		t.Errorf("expected name Alice, got %q", name)
	}
	if age, ok := res.Data.Field("age").Int64(); !ok || age != 30 {
		t.Errorf("expected age 30, got %d", age)
	}
}

func TestController_Post_JSONDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type application/json, got %q", ct)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(201)
		json.NewEncoder(w).Encode(map[string]string{"id": "u-1", "name": body["name"]})
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := c.Post(context.Background(), "users", map[string]string{"name": "Bob"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.StatusCode != 201 {
		t.Errorf("expected 201, got %d", res.StatusCode)
	}
	if name, _ := res.Data.Field("name").Str(); name != "Bob" {
		t.Errorf("expected echoed name Bob, got %q", name)
	}
}

func TestController_PutPatchDelete(t *testing.T) {
	var gotMethod, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()

	if _, err := c.Put(ctx, "users/1", map[string]string{"name": "Ann"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Errorf("expected PUT, got %s", gotMethod)
	}

	if _, err := c.Patch(ctx, "users/1", map[string]string{"name": "Ann"}); err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if gotMethod != http.MethodPatch {
		t.Errorf("expected PATCH, got %s", gotMethod)
	}

	if _, err := c.Delete(ctx, "users/1", nil); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("expected DELETE, got %s", gotMethod)
	}
	if gotBody != "" {
		t.Errorf("expected empty DELETE body, got %q", gotBody)
	}

	if _, err := c.Delete(ctx, "users/1", map[string]bool{"force": true}); err != nil {
		t.Fatalf("Delete with body: %v", err)
	}
	if !strings.Contains(gotBody, "force") {
		t.Errorf("expected DELETE body to carry payload, got %q", gotBody)
	}
}

func TestController_PathJoin(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	tests := []struct {
		base string
		path string
		want string
	}{
		{srv.URL, "a/b", "/a/b"},
		{srv.URL, "/a/b", "/a/b"},
		{srv.URL + "/", "a/b", "/a/b"},
		{srv.URL + "/api/v1", "users", "/api/v1/users"},
		{srv.URL + "/api/v1/", "/users", "/api/v1/users"},
		{srv.URL, "", "/"},
	}
	for _, tt := range tests {
		c, err := New(tt.base)
		if err != nil {
			t.Fatalf("New(%q): %v", tt.base, err)
		}
		if _, err := c.Get(context.Background(), tt.path); err != nil {
			t.Fatalf("Get(%q): %v", tt.path, err)
		}
		if gotPath != tt.want {
			t.Errorf("base %q + path %q: got %q, want %q", tt.base, tt.path, gotPath, tt.want)
		}
	}
}

func TestController_CheckHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("expected HEAD, got %s", r.Method)
		}
		w.WriteHeader(200)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h := c.CheckHealth(context.Background())
	if h.Status != observability.HealthStatusUp {
		t.Errorf("expected up, got %s (%s)", h.Status, h.Message)
	}
	if h.Name == "" || h.Details["url"] == "" {
		t.Errorf("expected component name and url detail, got %+v", h)
	}
}

func TestController_CheckHealth_Down(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h := c.CheckHealth(context.Background())
	if h.Status != observability.HealthStatusDown {
		t.Errorf("expected down, got %s", h.Status)
	}
	if h.Message == "" {
		t.Error("expected failure message")
	}
}

func TestController_CheckHealth_Degraded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(503)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h := c.CheckHealth(context.Background())
	if h.Status != observability.HealthStatusDegraded {
		t.Errorf("expected degraded, got %s", h.Status)
	}
}

func TestController_BaseURLCopy(t *testing.T) {
	c, err := New("https://api.example.com/v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	u := c.BaseURL()
	u.Host = "tampered.example.com"
	if c.BaseURL().Host != "api.example.com" {
		t.Error("BaseURL should return a copy")
	}
}

func TestController_Unwrap(t *testing.T) {
	c, err := New("https://api.example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Unwrap() == nil {
		t.Error("expected underlying http client")
	}
}

func TestController_WithHTTPClient(t *testing.T) {
	custom := &http.Client{}
	c, err := New("https://api.example.com", WithHTTPClient(custom))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Unwrap() != custom {
		t.Error("expected custom http client to be used")
	}
}

func TestFromConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Env"); got != "staging" {
			t.Errorf("expected X-Env=staging, got %q", got)
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := FromConfig(Config{
		BaseURL: srv.URL,
		Headers: map[string]string{"X-Env": "staging"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.Get(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
