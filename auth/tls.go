// Copyright 2024 Contributors to the SSG API Client project.
// SPDX-License-Identifier: Apache-2.0
package auth

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/ssg-wsg/apiclient/common"
)

// NewTLSTransport returns a pointer to a new http.Transport with TLS config
// initialized with system certs as well as specified certPaths. When identity
// is not nil it is presented to any server that requests a client
// certificate. Connections are not kept alive past the exchange.
func NewTLSTransport(identity *tls.Certificate, certPaths []string) (*http.Transport, error) {
	certPool, err := x509.SystemCertPool()
	if err != nil {
		return nil, common.Errorf(common.KindTLSSetup,
			"could not load system cert pool: %w", err)
	}

	for _, certPath := range certPaths {
		rawCert, err := os.ReadFile(certPath)
		if err != nil {
			return nil, common.Errorf(common.KindTLSSetup,
				"could not read cert: %w", err)
		}

		if ok := certPool.AppendCertsFromPEM(rawCert); !ok {
			return nil, common.NewError(common.KindTLSSetup,
				fmt.Errorf("invalid cert in %s", certPath))
		}
	}

	cfg := &tls.Config{
		RootCAs:    certPool,
		MinVersion: tls.VersionTLS12,
	}

	if identity != nil {
		cfg.GetClientCertificate = func(*tls.CertificateRequestInfo) (*tls.Certificate, error) {
			return identity, nil
		}
	}

	return &http.Transport{
		TLSClientConfig:     cfg,
		TLSHandshakeTimeout: 10 * time.Second,
		DisableKeepAlives:   true,
		ForceAttemptHTTP2:   true,
	}, nil
}
