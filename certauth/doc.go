// Copyright 2026 Contributors to the SSG API Client project.
// SPDX-License-Identifier: Apache-2.0

/*
Package certauth issues requests to the API gateway authenticated by a client
certificate in the TLS handshake (mutual TLS).

The user creates a FetchConfig supplying the keystore:

	cfg := FetchConfig{
		Authenticator: &auth.CertificateAuthenticator{
			KeystorePath:     "/path/to/example.p12",
			KeystorePassword: "password",
		},
	}

Server certificates are verified against the system roots; extra roots may be
listed in the authenticator's CAFiles. Verification is never disabled.

Then Run is invoked with the URL of the API to call:

	err := cfg.Run("https://api.ssg-wsg.sg/skillsFramework/sectors")

The response is printed to standard output, or to cfg.Renderer. Fetch returns
the exchange instead of printing it.
*/
package certauth
