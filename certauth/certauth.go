// Copyright 2026 Contributors to the SSG API Client project.
// SPDX-License-Identifier: Apache-2.0

package certauth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/juju/loggo/v2"
	"github.com/ssg-wsg/apiclient/auth"
	"github.com/ssg-wsg/apiclient/common"
	"github.com/ssg-wsg/apiclient/render"
)

var logger = loggo.GetLogger("ssgapi.certauth")

// FetchConfig holds the context of a certificate authenticated fetch
type FetchConfig struct {
	Client        *common.Client                 // HTTP(s) client connection configuration, its transport is replaced
	Authenticator *auth.CertificateAuthenticator // client identity presented in the handshake
	Renderer      *render.Renderer               // output of Run, standard output if nil
	APIVersion    string                         // x-api-version of the GET, latest if empty
}

// Fetch loads the client identity, builds a TLS transport presenting it and
// issues one GET to uri, which must be an https URL. No network activity happens unless the identity
// loads. The caller must Close the returned Exchange.
func (cfg FetchConfig) Fetch(uri string) (*common.Exchange, error) {
	if err := cfg.check(); err != nil {
		return nil, err
	}

	if _, err := common.ParseHTTPSURI(uri); err != nil {
		return nil, fmt.Errorf("bad URL: %w", err)
	}

	identity, err := cfg.Authenticator.LoadCertificate()
	if err != nil {
		return nil, err
	}

	logger.Debugf("presenting client certificate %q issued by %q",
		identity.Leaf.Subject.CommonName, identity.Leaf.Issuer.CommonName)

	transport, err := auth.NewTLSTransport(identity, cfg.Authenticator.CAFiles)
	if err != nil {
		return nil, err
	}

	client := common.NewClient()
	if cfg.Client != nil {
		c := *cfg.Client
		client = &c
	}
	client.SetTransport(transport)

	header := http.Header{}
	if v, err := cfg.Authenticator.EncodeHeader(); err == nil && v != "" {
		header.Set("Authorization", v)
	}
	if cfg.APIVersion != "" {
		header.Set(common.APIVersionHeader, cfg.APIVersion)
	}

	x, err := client.GetResource(uri, header)
	if err != nil {
		return nil, common.Errorf(common.KindTransport, "GET %s failed: %w", uri, err)
	}

	return x, nil
}

// Run fetches uri and renders the response.
func (cfg FetchConfig) Run(uri string) error {
	x, err := cfg.Fetch(uri)
	if err != nil {
		return err
	}
	defer x.Close()

	r := cfg.Renderer
	if r == nil {
		r = render.New(nil)
	}

	return r.Render(x)
}

func (cfg FetchConfig) check() error {
	if cfg.Authenticator == nil {
		return errors.New("bad configuration: no client certificate")
	}

	return nil
}
