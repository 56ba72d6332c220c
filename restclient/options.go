package restclient

import "time"

// requestOptions collects per-call settings.
type requestOptions struct {
	expectedStatus int
	hasExpected    bool
	headers        map[string]string
	query          map[string]string
	timeout        time.Duration
}

// RequestOption configures a single request.
type RequestOption func(*requestOptions)

// WithExpectedStatus makes the call fail with an unexpected-status error
// unless the response carries exactly this code. Without it, any status
// is accepted and the body is handed to the deserializer.
func WithExpectedStatus(code int) RequestOption {
	return func(o *requestOptions) {
		o.expectedStatus = code
		o.hasExpected = true
	}
}

// WithHeader adds one header to the request.
func WithHeader(name, value string) RequestOption {
	return func(o *requestOptions) {
		if o.headers == nil {
			o.headers = make(map[string]string)
		}
		o.headers[name] = value
	}
}

// WithHeaders adds headers to the request.
func WithHeaders(headers map[string]string) RequestOption {
	return func(o *requestOptions) {
		if o.headers == nil {
			o.headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			o.headers[k] = v
		}
	}
}

// WithQuery adds query parameters to the request.
func WithQuery(params map[string]string) RequestOption {
	return func(o *requestOptions) {
		if o.query == nil {
			o.query = make(map[string]string, len(params))
		}
		for k, v := range params {
			o.query[k] = v
		}
	}
}

// WithTimeout overrides the controller's default timeout for this call.
func WithTimeout(d time.Duration) RequestOption {
	return func(o *requestOptions) {
		o.timeout = d
	}
}
