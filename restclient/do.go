package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/restkit/dynjson"
	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/observability"
	"github.com/kbukum/restkit/version"
)

// Result is the outcome of a successful call.
type Result[T any] struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers, first value per name.
	Headers map[string]string
	// Data is the deserialized response body.
	Data T
}

// Get performs a GET request and deserializes the response with d.
func Get[T any](ctx context.Context, c *Controller, d Deserializer[T], path string, opts ...RequestOption) (*Result[T], error) {
	return do(ctx, c, d, http.MethodGet, path, nil, opts...)
}

// Post performs a POST request with an optional JSON body and
// deserializes the response with d.
func Post[T any](ctx context.Context, c *Controller, d Deserializer[T], path string, body any, opts ...RequestOption) (*Result[T], error) {
	return do(ctx, c, d, http.MethodPost, path, body, opts...)
}

// Put performs a PUT request with an optional JSON body and deserializes
// the response with d.
func Put[T any](ctx context.Context, c *Controller, d Deserializer[T], path string, body any, opts ...RequestOption) (*Result[T], error) {
	return do(ctx, c, d, http.MethodPut, path, body, opts...)
}

// Patch performs a PATCH request with an optional JSON body and
// deserializes the response with d.
func Patch[T any](ctx context.Context, c *Controller, d Deserializer[T], path string, body any, opts ...RequestOption) (*Result[T], error) {
	return do(ctx, c, d, http.MethodPatch, path, body, opts...)
}

// Delete performs a DELETE request with an optional JSON body and
// deserializes the response with d.
func Delete[T any](ctx context.Context, c *Controller, d Deserializer[T], path string, body any, opts ...RequestOption) (*Result[T], error) {
	return do(ctx, c, d, http.MethodDelete, path, body, opts...)
}

// do executes one request through the pipeline: resolve the target,
// build the request, execute it, validate the status, deserialize.
func do[T any](ctx context.Context, c *Controller, d Deserializer[T], method, path string, body any, opts ...RequestOption) (result *Result[T], err error) {
	o := requestOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	timeout := o.timeout
	if timeout <= 0 {
		timeout = c.config.Timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	requestID := o.headers["X-Request-ID"]
	if requestID == "" {
		requestID = c.config.Headers["X-Request-ID"]
	}
	if requestID == "" && c.config.RequestID {
		requestID = uuid.NewString()
	}

	if c.instrument {
		oc := observability.NewOperationContext(c.service, operationName(method, path), requestID, c.metrics)
		oc.Method = method
		oc.Host = c.base.Host
		oc.Path = path
		spanCtx, span := oc.StartSpanForOperation(ctx, observability.SpanHTTPRequest)
		ctx = spanCtx
		defer func() {
			if err != nil && c.metrics != nil {
				c.metrics.RecordError(ctx, errorKind(err), c.base.Host)
			}
			status := StatusCode(err)
			if result != nil {
				status = result.StatusCode
			}
			oc.EndOperation(ctx, span, status, err)
		}()
	}

	start := time.Now()

	req, err := c.buildRequest(ctx, method, path, body, d.Accept(), &o, requestID)
	if err != nil {
		return nil, err
	}

	c.log.Debug("request started", logger.Fields(
		logger.FieldMethod, method,
		logger.FieldURL, req.URL.String(),
	))

	status, headers, respBody, err := c.roundTrip(req)
	if err != nil {
		c.log.Warn("request failed", logger.MergeWithError(logger.RequestFields(method, path), err))
		return nil, err
	}

	if o.hasExpected && status != o.expectedStatus {
		err = NewUnexpectedStatusError(status, headers, respBody)
		c.log.Warn("unexpected status", logger.Fields(
			logger.FieldMethod, method,
			logger.FieldPath, path,
			logger.FieldStatus, status,
		))
		return nil, err
	}

	data, derr := d.Deserialize(respBody)
	if derr != nil {
		err = NewMalformedError(status, headers, respBody, derr)
		c.log.Warn("malformed response", logger.MergeWithError(logger.RequestFields(method, path), derr))
		return nil, err
	}

	c.log.Debug("request completed", logger.MergeWithDuration(logger.Fields(
		logger.FieldMethod, method,
		logger.FieldStatus, status,
	), time.Since(start)))

	return &Result[T]{StatusCode: status, Headers: headers, Data: data}, nil
}

// buildRequest constructs the outgoing *http.Request. A non-empty
// relative path appends to the base URL, never replaces it.
func (c *Controller) buildRequest(ctx context.Context, method, path string, body any, accept string, o *requestOptions, requestID string) (*http.Request, error) {
	target := c.base.String()
	if path != "" {
		target = strings.TrimRight(target, "/") + "/" + strings.TrimLeft(path, "/")
	}

	bodyBytes, err := encodeBody(body)
	if err != nil {
		return nil, fmt.Errorf("restclient: encode request body: %w", err)
	}

	var reader io.Reader
	if len(bodyBytes) > 0 {
		reader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("restclient: create request: %w", err)
	}

	if len(o.query) > 0 {
		q := req.URL.Query()
		for k, v := range o.query {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}

	req.Header.Set("User-Agent", c.userAgent())
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if len(bodyBytes) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}

	// Merge order, later wins: defaults, per-call, header source.
	for k, v := range c.config.Headers {
		req.Header.Set(k, v)
	}
	for k, v := range o.headers {
		req.Header.Set(k, v)
	}
	if c.source != nil {
		generated, err := c.source.Headers(ctx)
		if err != nil {
			return nil, fmt.Errorf("restclient: header source: %w", err)
		}
		for k, v := range generated {
			req.Header.Set(k, v)
		}
	}

	if requestID != "" && req.Header.Get("X-Request-ID") == "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	return req, nil
}

// roundTrip executes the request and reads the full body, classifying
// transport-level failures.
func (c *Controller) roundTrip(req *http.Request) (int, map[string]string, []byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(req.Context().Err(), context.DeadlineExceeded) {
			return 0, nil, nil, NewTimeoutError(err)
		}
		return 0, nil, nil, NewTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	headers := flattenHeaders(resp.Header)
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		readErr := fmt.Errorf("read response body: %w", err)
		return resp.StatusCode, headers, body, NewBadResponseError(resp.StatusCode, headers, body, readErr)
	}

	return resp.StatusCode, headers, body, nil
}

// userAgent resolves the User-Agent header value.
func (c *Controller) userAgent() string {
	if c.config.UserAgent != "" {
		return c.config.UserAgent
	}
	return version.UserAgent()
}

// encodeBody converts a body value into JSON bytes. dynjson values use
// their own encoder; raw bytes pass through untouched.
func encodeBody(body any) ([]byte, error) {
	switch v := body.(type) {
	case nil:
		return nil, nil
	case dynjson.Value:
		return v.Encode()
	case json.RawMessage:
		return v, nil
	case []byte:
		return v, nil
	default:
		return json.Marshal(v)
	}
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}

// operationName labels a request span as "VERB /path".
func operationName(method, path string) string {
	return method + " /" + strings.TrimLeft(path, "/")
}

// errorKind extracts the classification label for error metrics.
func errorKind(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind.String()
	}
	return "internal"
}
