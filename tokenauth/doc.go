// Copyright 2026 Contributors to the SSG API Client project.
// SPDX-License-Identifier: Apache-2.0

/*
Package tokenauth implements the OAuth2 client-credentials flow of the API
gateway: one token request followed by one request authorized with the token.

The user creates an ExchangeConfig supplying the application's credentials:

	cfg := ExchangeConfig{
		Authenticator: &auth.Oauth2Authenticator{
			TokenURL:     auth.DefaultTokenURL,
			ClientID:     "my-client-id",
			ClientSecret: "my-secret",
		},
	}

The token request is

	POST /dp-oauth/oauth/token
	Content-Type: application/x-www-form-urlencoded
	Authorization: Basic base64(client_id:client_secret)

	grant_type=client_credentials

and the access_token and token_type members of its response authorize the
follow-up request as "Authorization: <token_type> <access_token>".

By default the response is decoded as JSON. Setting Parser to auth.SplitParser
selects the positional extraction used by the gateway's sample clients.

The whole exchange is run with

	err := cfg.Run("https://public-api.ssg-wsg.sg/courses/directory")

If no token can be extracted the follow-up request is still sent, with an
empty authorization, unless UnsetToken is ShortCircuit. AcquireToken and
FetchWithToken run the two steps separately.
*/
package tokenauth
