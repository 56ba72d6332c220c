// Package security provides TLS configuration and certificate trust
// policies for restkit clients.
//
// The TrustSelfSignedSameHost policy accepts self-signed certificates,
// but only on connections to the client's own base host. Certificates
// presented by any other host still go through standard chain
// verification.
//
// # TLS Configuration
//
//	cfg := security.TLSConfig{
//	    Trust:  security.TrustSelfSignedSameHost,
//	    CAFile: "/path/to/ca.pem",
//	}
//
//	tlsConfig, err := cfg.Build("api.internal.example.com")
package security
