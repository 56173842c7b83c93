// Copyright 2021 Contributors to the SSG API Client project.
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"net/http/httptest"
)

// NewTestingHTTPClient creates an HTTP test server (with a configurable request
// handler), an API Client and connects them together.  The API client and the
// server's shutdown switch are returned.
func NewTestingHTTPClient(handler http.Handler) (cli *Client, closerFn func()) {
	srv := httptest.NewServer(handler)

	cli = NewClient()
	cli.SetTransport(&http.Transport{
		DialContext: func(_ context.Context, network, _ string) (net.Conn, error) {
			return net.Dial(network, srv.Listener.Addr().String())
		},
	})

	closerFn = srv.Close

	return
}

// NewTestingHTTPSClient is NewTestingHTTPClient over TLS. Whatever host the
// request targets, the client dials the test server and verifies its
// certificate as if it had been issued for that host.
func NewTestingHTTPSClient(handler http.Handler) (cli *Client, closerFn func()) {
	srv := httptest.NewTLSServer(handler)

	base := srv.Client().Transport.(*http.Transport)
	cfg := base.TLSClientConfig.Clone()
	// the httptest certificate is issued for example.com
	cfg.ServerName = "example.com"

	cli = NewClient()
	cli.SetTransport(&http.Transport{
		TLSClientConfig: cfg,
		DialTLSContext: func(ctx context.Context, network, _ string) (net.Conn, error) {
			d := tls.Dialer{Config: cfg}
			return d.DialContext(ctx, network, srv.Listener.Addr().String())
		},
	})

	closerFn = srv.Close

	return
}
