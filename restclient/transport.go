package restclient

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"strings"

	"golang.org/x/net/http2"
)

// newTransport builds the HTTP transport for a controller. baseHost is
// the controller's base hostname, used by the same-host trust policy.
func newTransport(cfg Config, baseHost string) (http.RoundTripper, error) {
	if cfg.H2C {
		// Cleartext HTTP/2 with prior knowledge. The TLS dialer is
		// replaced with a plain TCP dial.
		return &http2.Transport{
			AllowHTTP: true,
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return (&net.Dialer{}).DialContext(ctx, network, addr)
			},
		}, nil
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build(baseHost)
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			transport.TLSClientConfig = tlsCfg
		}
	}
	return transport, nil
}

// sameHostRedirectPolicy refuses redirects that leave the base host.
// Installed when the self-signed trust policy is active, so relaxed
// verification can never follow a redirect onto another host.
func sameHostRedirectPolicy(baseHost string) func(req *http.Request, via []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= 10 {
			return fmt.Errorf("stopped after 10 redirects")
		}
		if !strings.EqualFold(req.URL.Hostname(), baseHost) {
			return fmt.Errorf("refusing redirect to %q outside base host %q", req.URL.Hostname(), baseHost)
		}
		return nil
	}
}
