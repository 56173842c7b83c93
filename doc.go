// Copyright 2021 Contributors to the SSG API Client project.
// SPDX-License-Identifier: Apache-2.0

/*
Package apiclient calls APIs published on the SSG-WSG API gateway with either
of the two credential strategies the gateway accepts.

Certificate

A client certificate, stored in a password protected PKCS#12 keystore, is
presented in the TLS handshake:

	x, err := apiclient.FetchWithCertificate(
		"https://api.ssg-wsg.sg/skillsFramework/sectors",
		"/path/to/example.p12",
		"password",
	)
	if err != nil { ... }
	defer x.Close()

OAuth2

The client ID and secret obtained from the developer portal are exchanged for
a token, which then authorizes the request:

	tok, err := apiclient.AcquireToken(clientID, secret, "")
	if err != nil { ... }

	x, err := apiclient.FetchWithToken("https://public-api.ssg-wsg.sg/...", tok)

Either exchange can be printed with the render package:

	err = render.New(os.Stdout).Render(x)

The certauth and tokenauth packages expose the full configuration of each
strategy.
*/
package apiclient
