// Copyright 2026 Contributors to the SSG API Client project.
// SPDX-License-Identifier: Apache-2.0

// Package testutil generates throwaway certificate material for tests.
package testutil

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"testing"
	"time"

	"software.sslmate.com/src/go-pkcs12"
)

// NewClientIdentity returns a self-signed client certificate for cn and its
// private key.
func NewClientIdentity(tb testing.TB, cn string) (*x509.Certificate, *ecdsa.PrivateKey) {
	tb.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		tb.Fatalf("failed to generate key: %v", err)
	}

	template := &x509.Certificate{
		SerialNumber: big.NewInt(time.Now().UnixNano()),
		Subject:      pkix.Name{CommonName: cn},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	if err != nil {
		tb.Fatalf("failed to create certificate: %v", err)
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		tb.Fatalf("failed to parse certificate: %v", err)
	}

	return cert, key
}

// WritePKCS12 writes cert and key to path as a password protected keystore.
func WritePKCS12(tb testing.TB, path string, cert *x509.Certificate, key *ecdsa.PrivateKey, password string) {
	tb.Helper()

	data, err := pkcs12.Modern.Encode(key, cert, nil, password)
	if err != nil {
		tb.Fatalf("failed to encode keystore: %v", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		tb.Fatalf("failed to write keystore: %v", err)
	}
}

// WriteCertPEM writes cert to path in PEM format.
func WriteCertPEM(tb testing.TB, path string, cert *x509.Certificate) {
	tb.Helper()

	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: cert.Raw})
	if err := os.WriteFile(path, pemBytes, 0o600); err != nil {
		tb.Fatalf("failed to write certificate: %v", err)
	}
}

// WriteKeyPEM writes key to path as a PKCS#8 PEM block.
func WriteKeyPEM(tb testing.TB, path string, key *ecdsa.PrivateKey) {
	tb.Helper()

	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		tb.Fatalf("failed to marshal key: %v", err)
	}

	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	if err := os.WriteFile(path, pemBytes, 0o600); err != nil {
		tb.Fatalf("failed to write key: %v", err)
	}
}
