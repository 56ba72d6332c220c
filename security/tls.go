package security

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
)

// TrustPolicy selects how server certificates are verified.
type TrustPolicy string

const (
	// TrustSystem verifies server certificates against the system root
	// pool (or CAFile when set). This is the default.
	TrustSystem TrustPolicy = "system"

	// TrustSelfSignedSameHost verifies normally first, then grants trust
	// to certificates that fail chain verification as long as the
	// connection targets the configured base host. Connections to any
	// other host are never granted this exemption. Intended for
	// development servers and appliances with self-signed certificates.
	TrustSelfSignedSameHost TrustPolicy = "self_signed_same_host"
)

// TLSConfig holds TLS settings shared across restkit modules.
type TLSConfig struct {
	// Trust selects the server certificate trust policy.
	// Defaults to TrustSystem.
	Trust TrustPolicy `yaml:"trust" mapstructure:"trust"`

	// CAFile is the path to the CA certificate file for verifying the server.
	CAFile string `yaml:"ca_file" mapstructure:"ca_file"`

	// CertFile is the path to the client TLS certificate file (for mTLS).
	CertFile string `yaml:"cert_file" mapstructure:"cert_file"`

	// KeyFile is the path to the client TLS key file (for mTLS).
	KeyFile string `yaml:"key_file" mapstructure:"key_file"`

	// ServerName overrides the server name used for certificate verification.
	ServerName string `yaml:"server_name" mapstructure:"server_name"`

	// MinVersion is the minimum TLS version (e.g., tls.VersionTLS12).
	// Defaults to TLS 1.2 if not set.
	MinVersion uint16 `yaml:"min_version" mapstructure:"min_version"`
}

// Build creates a *tls.Config from the configuration. baseHost is the
// hostname (without port) the client is pinned to; it anchors the
// TrustSelfSignedSameHost policy. Returns nil if no TLS settings are
// configured, leaving the transport on its defaults.
func (c *TLSConfig) Build(baseHost string) (*tls.Config, error) {
	if c == nil || !c.hasSettings() {
		return nil, nil
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	minVersion := c.MinVersion
	if minVersion == 0 {
		minVersion = tls.VersionTLS12
	}

	cfg := &tls.Config{
		ServerName: c.ServerName,
		MinVersion: minVersion,
	}

	if err := c.loadCA(cfg); err != nil {
		return nil, err
	}

	if err := c.loadClientCert(cfg); err != nil {
		return nil, err
	}

	if c.Trust == TrustSelfSignedSameHost {
		// Verification moves entirely into VerifyConnection so the
		// same-host exemption can be applied after a failed chain check.
		cfg.InsecureSkipVerify = true
		cfg.VerifyConnection = SameHostVerifier(baseHost, cfg.RootCAs)
	}

	return cfg, nil
}

// SameHostVerifier returns a connection verifier that accepts any
// certificate chain anchored in roots (or the system pool when roots is
// nil), and additionally grants trust to unverifiable chains when the
// connection targets baseHost. A connection bound for any other host
// fails with the original verification error.
func SameHostVerifier(baseHost string, roots *x509.CertPool) func(tls.ConnectionState) error {
	return func(cs tls.ConnectionState) error {
		if len(cs.PeerCertificates) == 0 {
			return errors.New("security/tls: server presented no certificate")
		}
		err := verifyChain(cs, roots)
		if err == nil {
			return nil
		}
		if sameHost(cs.ServerName, baseHost) {
			return nil
		}
		return fmt.Errorf("security/tls: certificate not trusted for %q: %w", cs.ServerName, err)
	}
}

// Validate checks that the TLS configuration is consistent.
func (c *TLSConfig) Validate() error {
	if c == nil {
		return nil
	}
	switch c.Trust {
	case "", TrustSystem, TrustSelfSignedSameHost:
	default:
		return fmt.Errorf("security/tls: unknown trust policy %q", c.Trust)
	}
	// If one of cert/key is set, both must be set
	if (c.CertFile != "") != (c.KeyFile != "") {
		return fmt.Errorf("security/tls: both cert_file and key_file must be provided together")
	}
	return nil
}

// IsEnabled returns true if any TLS setting is configured.
func (c *TLSConfig) IsEnabled() bool {
	if c == nil {
		return false
	}
	return c.hasSettings()
}

// hasSettings checks if any TLS field is set.
func (c *TLSConfig) hasSettings() bool {
	return (c.Trust != "" && c.Trust != TrustSystem) ||
		c.CAFile != "" || c.CertFile != "" || c.ServerName != "" || c.MinVersion != 0
}

// verifyChain runs standard x509 chain verification for the connection.
// A nil roots pool falls back to the system pool.
func verifyChain(cs tls.ConnectionState, roots *x509.CertPool) error {
	opts := x509.VerifyOptions{
		Roots:         roots,
		DNSName:       cs.ServerName,
		Intermediates: x509.NewCertPool(),
	}
	for _, cert := range cs.PeerCertificates[1:] {
		opts.Intermediates.AddCert(cert)
	}
	_, err := cs.PeerCertificates[0].Verify(opts)
	return err
}

// sameHost reports whether the connection's SNI value targets baseHost.
// IP targets never appear in SNI, so an empty name is accepted only when
// the base host is itself an IP literal; the HTTP client additionally
// refuses cross-host redirects under TrustSelfSignedSameHost, which pins
// IP connections to the base host.
func sameHost(sni, baseHost string) bool {
	if baseHost == "" {
		return false
	}
	if sni == "" {
		return net.ParseIP(baseHost) != nil
	}
	return strings.EqualFold(sni, baseHost)
}

// loadCA loads the CA certificate into the TLS config.
func (c *TLSConfig) loadCA(cfg *tls.Config) error {
	if c.CAFile == "" {
		return nil
	}
	ca, err := os.ReadFile(c.CAFile)
	if err != nil {
		return fmt.Errorf("security/tls: failed to read CA file: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(ca) {
		return fmt.Errorf("security/tls: failed to parse CA certificate")
	}
	cfg.RootCAs = pool
	return nil
}

// loadClientCert loads the client certificate and key into the TLS config.
func (c *TLSConfig) loadClientCert(cfg *tls.Config) error {
	if c.CertFile == "" || c.KeyFile == "" {
		return nil
	}
	cert, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
	if err != nil {
		return fmt.Errorf("security/tls: failed to load client certificate: %w", err)
	}
	cfg.Certificates = []tls.Certificate{cert}
	return nil
}
