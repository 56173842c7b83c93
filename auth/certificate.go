// Copyright 2026 Contributors to the SSG API Client project.
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"crypto"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/juju/loggo/v2"
	"github.com/mitchellh/mapstructure"
	"github.com/ssg-wsg/apiclient/common"
	"software.sslmate.com/src/go-pkcs12"
)

const (
	FormatPKCS12 = "PKCS12"
	FormatPEM    = "PEM"

	DefaultKeyManagerAlgorithm = "SunX509"
)

var logger = loggo.GetLogger("ssgapi.auth")

// CertificateAuthenticator is a client identity presented in the TLS
// handshake. The identity is read either from a password protected PKCS#12
// keystore or from a PEM certificate and key pair.
type CertificateAuthenticator struct {
	KeystorePath        string
	KeystorePassword    string
	KeystoreFormat      string
	KeyManagerAlgorithm string

	CertFile string
	KeyFile  string

	// CAFiles are PEM bundles trusted in addition to the system roots.
	CAFiles []string
}

func (o *CertificateAuthenticator) Configure(cfg map[string]interface{}) error {
	decoded := struct {
		KeystorePath        string                 `mapstructure:"keystore_path"`
		KeystorePassword    string                 `mapstructure:"keystore_password"`
		KeystoreFormat      string                 `mapstructure:"keystore_format"`
		KeyManagerAlgorithm string                 `mapstructure:"key_manager_algorithm"`
		CertFile            string                 `mapstructure:"cert_file"`
		KeyFile             string                 `mapstructure:"key_file"`
		CAFiles             []string               `mapstructure:"ca_files"`
		Rest                map[string]interface{} `mapstructure:",remain"`
	}{}

	if err := mapstructure.Decode(cfg, &decoded); err != nil {
		return err
	}

	o.KeystorePath = decoded.KeystorePath
	o.KeystorePassword = decoded.KeystorePassword
	o.KeystoreFormat = decoded.KeystoreFormat
	o.KeyManagerAlgorithm = decoded.KeyManagerAlgorithm
	o.CertFile = decoded.CertFile
	o.KeyFile = decoded.KeyFile
	o.CAFiles = decoded.CAFiles

	if o.KeystoreFormat == "" {
		o.KeystoreFormat = FormatPKCS12
	}

	if o.KeyManagerAlgorithm == "" {
		o.KeyManagerAlgorithm = DefaultKeyManagerAlgorithm
	}

	if err := o.validate(); err != nil {
		return err
	}

	return checkUnexpected(decoded.Rest)
}

// EncodeHeader returns "": the certificate travels in the handshake.
func (o *CertificateAuthenticator) EncodeHeader() (string, error) {
	return "", nil
}

// LoadCertificate reads and decodes the configured identity. Unreadable,
// malformed or wrongly protected material yields a CredentialLoadError, an
// unsupported key manager algorithm a TLSSetupError.
func (o *CertificateAuthenticator) LoadCertificate() (*tls.Certificate, error) {
	if err := o.validate(); err != nil {
		return nil, common.NewError(common.KindCredentialLoad, err)
	}

	var (
		cert *tls.Certificate
		err  error
	)

	if o.format() == FormatPEM {
		cert, err = o.loadPEM()
	} else {
		cert, err = o.loadPKCS12()
	}

	if err != nil {
		return nil, err
	}

	if err := checkKeyManagerAlgorithm(o.KeyManagerAlgorithm); err != nil {
		return nil, err
	}

	if time.Now().After(cert.Leaf.NotAfter) {
		logger.Warningf("client certificate %q expired on %s",
			cert.Leaf.Subject.CommonName, cert.Leaf.NotAfter.Format(time.RFC3339))
	}

	return cert, nil
}

func (o *CertificateAuthenticator) loadPKCS12() (*tls.Certificate, error) {
	data, err := os.ReadFile(o.KeystorePath)
	if err != nil {
		return nil, common.Errorf(common.KindCredentialLoad,
			"could not read keystore: %w", err)
	}

	key, leaf, chain, err := pkcs12.DecodeChain(data, o.KeystorePassword)
	if err != nil {
		return nil, common.Errorf(common.KindCredentialLoad,
			"could not decode PKCS#12 keystore %s: %w", o.KeystorePath, err)
	}

	return deriveIdentity(key, leaf, chain)
}

func (o *CertificateAuthenticator) loadPEM() (*tls.Certificate, error) {
	pair, err := tls.LoadX509KeyPair(o.CertFile, o.KeyFile)
	if err != nil {
		return nil, common.Errorf(common.KindCredentialLoad,
			"could not load certificate and key: %w", err)
	}

	leaf, err := x509.ParseCertificate(pair.Certificate[0])
	if err != nil {
		return nil, common.Errorf(common.KindCredentialLoad,
			"could not parse certificate %s: %w", o.CertFile, err)
	}
	pair.Leaf = leaf

	return &pair, nil
}

// deriveIdentity assembles the handshake identity from decoded keystore
// material, leaf first.
func deriveIdentity(key interface{}, leaf *x509.Certificate, chain []*x509.Certificate) (*tls.Certificate, error) {
	signer, ok := key.(crypto.Signer)
	if !ok {
		return nil, common.Errorf(common.KindCredentialLoad,
			"private key of type %T cannot sign", key)
	}

	pub, ok := signer.Public().(interface{ Equal(crypto.PublicKey) bool })
	if !ok || !pub.Equal(leaf.PublicKey) {
		return nil, common.Errorf(common.KindCredentialLoad,
			"private key does not match certificate %q", leaf.Subject.CommonName)
	}

	cert := &tls.Certificate{
		Certificate: [][]byte{leaf.Raw},
		PrivateKey:  signer,
		Leaf:        leaf,
	}

	for _, c := range chain {
		cert.Certificate = append(cert.Certificate, c.Raw)
	}

	return cert, nil
}

func checkKeyManagerAlgorithm(alg string) error {
	switch alg {
	case "", DefaultKeyManagerAlgorithm, "PKIX", "NewSunX509":
		return nil
	default:
		return common.Errorf(common.KindTLSSetup,
			"unsupported key manager algorithm %q", alg)
	}
}

func (o *CertificateAuthenticator) format() string {
	if o.KeystoreFormat == "" {
		return FormatPKCS12
	}
	return strings.ToUpper(o.KeystoreFormat)
}

func (o *CertificateAuthenticator) validate() error {
	switch o.format() {
	case FormatPKCS12:
		if o.KeystorePath == "" {
			return errors.New("missing keystore_path")
		}
	case FormatPEM:
		if o.CertFile == "" {
			return errors.New("missing cert_file")
		}

		if o.KeyFile == "" {
			return errors.New("missing key_file")
		}
	default:
		return fmt.Errorf("unsupported keystore_format %q", o.KeystoreFormat)
	}

	return nil
}
