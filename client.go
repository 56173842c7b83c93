// Copyright 2021 Contributors to the SSG API Client project.
// SPDX-License-Identifier: Apache-2.0

package apiclient

import (
	"github.com/ssg-wsg/apiclient/auth"
	"github.com/ssg-wsg/apiclient/certauth"
	"github.com/ssg-wsg/apiclient/common"
	"github.com/ssg-wsg/apiclient/tokenauth"
)

// FetchWithCertificate issues a GET to uri over mutual TLS, presenting the
// identity stored in the PKCS#12 keystore at keystorePath. The caller must
// Close the returned Exchange.
func FetchWithCertificate(uri, keystorePath, keystorePassword string) (*common.Exchange, error) {
	cfg := certauth.FetchConfig{
		Authenticator: &auth.CertificateAuthenticator{
			KeystorePath:        keystorePath,
			KeystorePassword:    keystorePassword,
			KeystoreFormat:      auth.FormatPKCS12,
			KeyManagerAlgorithm: auth.DefaultKeyManagerAlgorithm,
		},
	}

	return cfg.Fetch(uri)
}

// AcquireToken exchanges the client credentials for a Token at tokenEndpoint,
// or at auth.DefaultTokenURL if tokenEndpoint is empty.
func AcquireToken(clientID, secret, tokenEndpoint string) (auth.Token, error) {
	if tokenEndpoint == "" {
		tokenEndpoint = auth.DefaultTokenURL
	}

	cfg := tokenauth.ExchangeConfig{
		Authenticator: &auth.Oauth2Authenticator{
			TokenURL:     tokenEndpoint,
			ClientID:     clientID,
			ClientSecret: secret,
		},
	}

	return cfg.AcquireToken()
}

// FetchWithToken issues a GET to uri authorized by tok. A Token with no field
// set is sent as is. The caller must Close the returned Exchange.
func FetchWithToken(uri string, tok auth.Token) (*common.Exchange, error) {
	return tokenauth.ExchangeConfig{}.FetchWithToken(uri, tok)
}
