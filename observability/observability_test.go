package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true")
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestNewMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	metrics, err := NewMetrics(meter)
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}
	if metrics == nil {
		t.Fatal("expected non-nil metrics")
	}

	ctx := context.Background()
	metrics.RecordRequestStart(ctx)
	metrics.RecordRequestEnd(ctx, "GET", "api.example.com", 200, 100*time.Millisecond)
	metrics.RecordError(ctx, "timeout", "api.example.com")
}

func TestNewOperationContext(t *testing.T) {
	oc := NewOperationContext("restclient", "GET /users", "req-1", nil)

	if oc.ServiceName != "restclient" {
		t.Errorf("expected ServiceName 'restclient', got %s", oc.ServiceName)
	}
	if oc.OperationName != "GET /users" {
		t.Errorf("expected OperationName 'GET /users', got %s", oc.OperationName)
	}
	if oc.RequestID != "req-1" {
		t.Errorf("expected RequestID 'req-1', got %s", oc.RequestID)
	}
	if oc.StartTime.IsZero() {
		t.Error("expected StartTime to be set")
	}
}

func TestOperationContextFromContext(t *testing.T) {
	oc := NewOperationContext("restclient", "GET /users", "req-1", nil)
	ctx := WithOperationContext(context.Background(), oc)

	retrieved := OperationContextFromContext(ctx)
	if retrieved == nil {
		t.Fatal("expected operation context from context")
	}
	if retrieved.OperationName != oc.OperationName {
		t.Errorf("expected OperationName %s, got %s", oc.OperationName, retrieved.OperationName)
	}
}

func TestOperationContextFromContext_NotSet(t *testing.T) {
	retrieved := OperationContextFromContext(context.Background())
	if retrieved != nil {
		t.Error("expected nil when operation context not set")
	}
}

func TestOperationContext_Duration(t *testing.T) {
	oc := NewOperationContext("restclient", "GET /users", "req-1", nil)
	oc.StartTime = time.Now().Add(-50 * time.Millisecond)

	duration := oc.Duration()
	if duration < 45*time.Millisecond || duration > 200*time.Millisecond {
		t.Errorf("expected duration around 50ms, got %v", duration)
	}
}

func TestOperationContext_NilMetrics(t *testing.T) {
	oc := NewOperationContext("restclient", "GET /users", "req-1", nil)
	ctx := context.Background()

	ctx, span := oc.StartSpanForOperation(ctx, "test.op")
	oc.EndOperation(ctx, span, 200, nil)
}

func TestNewServiceHealth(t *testing.T) {
	sh := NewServiceHealth("my-service", "1.0.0")

	if sh.Service != "my-service" {
		t.Errorf("expected Service 'my-service', got %s", sh.Service)
	}
	if sh.Version != "1.0.0" {
		t.Errorf("expected Version '1.0.0', got %s", sh.Version)
	}
	if sh.Status != HealthStatusUp {
		t.Errorf("expected Status 'up', got %s", sh.Status)
	}
}

func TestServiceHealth_AddComponent(t *testing.T) {
	sh := NewServiceHealth("my-service", "1.0.0")

	sh.AddComponent(Health{Name: "users-api", Status: HealthStatusUp})
	if sh.Status != HealthStatusUp {
		t.Errorf("expected status 'up' after healthy component, got %s", sh.Status)
	}

	sh.AddComponent(Health{Name: "billing-api", Status: HealthStatusDegraded, Message: "high latency"})
	if sh.Status != HealthStatusDegraded {
		t.Errorf("expected status 'degraded', got %s", sh.Status)
	}

	sh.AddComponent(Health{Name: "search-api", Status: HealthStatusDown, Message: "connection refused"})
	if sh.Status != HealthStatusDown {
		t.Errorf("expected status 'down', got %s", sh.Status)
	}

	if len(sh.Components) != 3 {
		t.Errorf("expected 3 components, got %d", len(sh.Components))
	}
}

func TestServiceHealth_DegradedDoesNotOverrideDown(t *testing.T) {
	sh := NewServiceHealth("svc", "1.0.0")
	sh.AddComponent(Health{Name: "a", Status: HealthStatusDown})
	sh.AddComponent(Health{Name: "b", Status: HealthStatusDegraded})

	if sh.Status != HealthStatusDown {
		t.Errorf("expected 'down' not overridden by 'degraded', got %s", sh.Status)
	}
}

func TestTracer(t *testing.T) {
	tracer := Tracer("test-tracer")
	if tracer == nil {
		t.Fatal("expected non-nil tracer")
	}
}

func TestMeter(t *testing.T) {
	meter := Meter("test-meter")
	if meter == nil {
		t.Fatal("expected non-nil meter")
	}
}

func TestStartSpan(t *testing.T) {
	ctx := context.Background()
	ctx, span := StartSpan(ctx, "test-operation")
	defer span.End()

	if span == nil {
		t.Fatal("expected non-nil span")
	}
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
}

func TestSpanFromContext(t *testing.T) {
	ctx := context.Background()
	span := SpanFromContext(ctx)
	if span == nil {
		t.Fatal("expected non-nil span (noop)")
	}

	// With a real span
	ctx, s := StartSpan(ctx, "test")
	defer s.End()
	got := SpanFromContext(ctx)
	if got == nil {
		t.Fatal("expected non-nil span from context")
	}
}

func TestSetSpanAttribute(t *testing.T) {
	// Use SDK tracer so span.IsRecording() returns true
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer tp.Shutdown(context.Background())
	otel.SetTracerProvider(tp)

	ctx, span := StartSpan(context.Background(), "test-attrs")
	defer span.End()

	// Test all supported types - should not panic
	SetSpanAttribute(ctx, "string-key", "value")
	SetSpanAttribute(ctx, "int-key", 42)
	SetSpanAttribute(ctx, "int64-key", int64(100))
	SetSpanAttribute(ctx, "float-key", 3.14)
	SetSpanAttribute(ctx, "bool-key", true)
	SetSpanAttribute(ctx, "string-slice-key", []string{"a", "b"})

	// Unsupported type - should not panic, just ignored
	SetSpanAttribute(ctx, "unsupported-key", struct{}{})

	// Reset to noop
	otel.SetTracerProvider(otel.GetTracerProvider())
}

func TestSetSpanAttributeNoSpan(t *testing.T) {
	// With background context (no recording span), should not panic
	ctx := context.Background()
	SetSpanAttribute(ctx, "key", "value")
}

func TestSetSpanError(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer tp.Shutdown(context.Background())
	otel.SetTracerProvider(tp)

	ctx, span := StartSpan(context.Background(), "test-error")
	defer span.End()

	SetSpanError(ctx, fmt.Errorf("test error"))
}

func TestSetSpanErrorNoSpan(t *testing.T) {
	ctx := context.Background()
	// Should not panic with background context
	SetSpanError(ctx, fmt.Errorf("no span error"))
}

func TestRecordErrorDirect(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	metrics, err := NewMetrics(meter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Should not panic
	metrics.RecordError(context.Background(), "timeout", "api.example.com")
}

func TestOperationContextWithMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	metrics, _ := NewMetrics(meter)

	oc := NewOperationContext("restclient", "GET /users", "req-1", metrics)
	oc.Method = "GET"
	oc.Host = "api.example.com"
	ctx := context.Background()

	ctx, span := oc.StartSpanForOperation(ctx, SpanHTTPRequest)
	oc.EndOperation(ctx, span, 200, nil)
}

func TestOperationContextEndWithError(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	metrics, _ := NewMetrics(meter)

	oc := NewOperationContext("restclient", "POST /users", "req-1", metrics)
	ctx := context.Background()

	ctx, span := oc.StartSpanForOperation(ctx, SpanHTTPRequest)
	oc.EndOperation(ctx, span, 0, fmt.Errorf("connection refused"))
}

func TestOperationContextWithMetadata(t *testing.T) {
	oc := NewOperationContext("restclient", "op", "req-1", nil)
	if oc.Metrics != nil {
		t.Error("expected nil metrics")
	}
}

func TestHealthStatusConstants(t *testing.T) {
	if HealthStatusUp != "up" {
		t.Errorf("expected 'up', got %q", HealthStatusUp)
	}
	if HealthStatusDown != "down" {
		t.Errorf("expected 'down', got %q", HealthStatusDown)
	}
	if HealthStatusDegraded != "degraded" {
		t.Errorf("expected 'degraded', got %q", HealthStatusDegraded)
	}
}

func TestHealthDetails(t *testing.T) {
	h := Health{
		Name:    "users-api",
		Status:  HealthStatusUp,
		Message: "reachable",
		Details: map[string]string{"host": "api.example.com", "status": "204"},
	}
	if h.Details["host"] != "api.example.com" {
		t.Error("expected Details to contain host")
	}
}

func TestSpanNameConstants(t *testing.T) {
	if SpanHTTPRequest != "http.request" {
		t.Errorf("expected 'http.request', got %q", SpanHTTPRequest)
	}
}

func TestAttributeKeyConstants(t *testing.T) {
	if AttrServiceName != "service.name" {
		t.Errorf("expected 'service.name', got %q", AttrServiceName)
	}
	if AttrOperationName != "operation.name" {
		t.Errorf("expected 'operation.name', got %q", AttrOperationName)
	}
	if AttrRequestID != "request.id" {
		t.Errorf("expected 'request.id', got %q", AttrRequestID)
	}
	if AttrHTTPStatus != "http.status_code" {
		t.Errorf("expected 'http.status_code', got %q", AttrHTTPStatus)
	}
}

func TestInitTracer(t *testing.T) {
	cfg := TracerConfig{
		ServiceName:    "test-service",
		ServiceVersion: "1.0.0",
		Environment:    "test",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		SampleRate:     1.0,
	}

	tp, err := InitTracer(context.Background(), cfg)
	if err != nil {
		t.Skipf("InitTracer failed: %v", err)
	}
	if tp != nil {
		defer tp.Shutdown(context.Background())
	}
}

func TestInitTracerSamplingRates(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
	}{
		{"always sample", 1.0},
		{"never sample", 0.0},
		{"ratio based", 0.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := TracerConfig{
				ServiceName:    "test",
				ServiceVersion: "1.0.0",
				Environment:    "test",
				Endpoint:       "localhost:4318",
				Insecure:       true,
				SampleRate:     tc.sampleRate,
			}
			tp, err := InitTracer(context.Background(), cfg)
			if err != nil {
				t.Skipf("InitTracer failed: %v", err)
			}
			if tp != nil {
				defer tp.Shutdown(context.Background())
			}
		})
	}
}

func TestInitMeter(t *testing.T) {
	cfg := MeterConfig{
		ServiceName:    "test-service",
		ServiceVersion: "1.0.0",
		Environment:    "test",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}

	mp, err := InitMeter(context.Background(), cfg)
	if err != nil {
		t.Skipf("InitMeter failed: %v", err)
	}
	if mp != nil {
		defer mp.Shutdown(context.Background())
	}
}

func TestInitMeterSecure(t *testing.T) {
	cfg := MeterConfig{
		ServiceName:    "test",
		ServiceVersion: "1.0.0",
		Environment:    "test",
		Endpoint:       "localhost:4318",
		Insecure:       false,
		Interval:       0,
	}

	mp, err := InitMeter(context.Background(), cfg)
	if err != nil {
		t.Skipf("InitMeter failed: %v", err)
	}
	if mp != nil {
		defer mp.Shutdown(context.Background())
	}
}
