package config

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// TemporalTLS builds the mTLS client config for the Temporal connection.
// Returns nil, nil when no cert/key is configured, meaning plaintext.
func (c *Config) TemporalTLS() (*tls.Config, error) {
	if c.TemporalTLSCert == "" && c.TemporalTLSKey == "" {
		return nil, nil
	}

	cert, err := tls.LoadX509KeyPair(c.TemporalTLSCert, c.TemporalTLSKey)
	if err != nil {
		return nil, fmt.Errorf("load temporal client cert: %w", err)
	}

	roots, err := loadCARoots(c.TemporalTLSCACert)
	if err != nil {
		return nil, err
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      roots,
		ServerName:   c.TemporalTLSServerName,
	}, nil
}

// loadCARoots reads a PEM CA bundle into a cert pool. An empty path returns
// a nil pool, which makes crypto/tls fall back to the system roots.
func loadCARoots(path string) (*x509.CertPool, error) {
	if path == "" {
		return nil, nil
	}

	caPEM, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read temporal CA cert: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caPEM) {
		return nil, fmt.Errorf("failed to parse temporal CA cert")
	}
	return pool, nil
}
