package clickhouse

import (
	"crypto/tls"
	"crypto/x509"
	"os"

	"github.com/pkg/errors"
)

// GetTLSConfig creates a TLS config for connecting to ClickHouse. A CA file alone
// verifies the server; adding a cert and key pair enables mTLS.
//
// Example usage:
//
//	cfg, err := GetTLSConfig(TLSSettings{CAFile: "ca.crt", CertFile: "tls.crt", KeyFile: "tls.key"})
//	if err != nil {
//		return err
//	}
func GetTLSConfig(settings TLSSettings) (*tls.Config, error) {
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}

	if settings.CertFile != "" || settings.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(settings.CertFile, settings.KeyFile)
		if err != nil {
			return nil, errors.Wrap(err, "unable to load cert file/key file")
		}
		cfg.Certificates = []tls.Certificate{cert}
	}

	if settings.CAFile != "" {
		caCert, err := os.ReadFile(settings.CAFile)
		if err != nil {
			return nil, errors.Wrap(err, "unable to load CA file")
		}

		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, errors.Errorf("no certificates found in %s", settings.CAFile)
		}
		cfg.RootCAs = pool
	}

	return cfg, nil
}
