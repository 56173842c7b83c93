// Copyright 2021 Contributors to the SSG API Client project.
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/juju/loggo/v2"
)

// DefaultTimeout bounds a whole exchange: connect, TLS handshake, headers and
// body.
const DefaultTimeout = 30 * time.Second

var logger = loggo.GetLogger("ssgapi.common")

// Client holds configuration data associated with the HTTP(s) session
type Client struct {
	HTTPClient http.Client
}

// NewClient instantiates a new Client. Redirects are not followed: the
// response to the first request is the one reported to the caller.
func NewClient() *Client {
	return &Client{
		HTTPClient: http.Client{
			Timeout:       DefaultTimeout,
			CheckRedirect: noRedirect,
		},
	}
}

// SetTransport installs rt as the client's round tripper.
func (c *Client) SetTransport(rt http.RoundTripper) {
	c.HTTPClient.Transport = rt
}

// SetTimeout overrides DefaultTimeout. A zero value disables the timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.HTTPClient.Timeout = d
}

// CloseIdleConnections drops any connection kept alive by the transport.
func (c *Client) CloseIdleConnections() {
	c.HTTPClient.CloseIdleConnections()
}

// GetResource issues a GET to uri with the supplied header.
func (c *Client) GetResource(uri string, header http.Header) (*Exchange, error) {
	return c.Do(http.MethodGet, uri, header, nil)
}

// PostResource issues a POST to uri, sending body with the supplied content
// type and header.
func (c *Client) PostResource(body []byte, ct, uri string, header http.Header) (*Exchange, error) {
	h := header.Clone()
	if h == nil {
		h = http.Header{}
	}
	h.Set("Content-Type", ct)

	return c.Do(http.MethodPost, uri, h, body)
}

// Do sends a single request and wraps the response into an Exchange. The
// caller owns the returned Exchange and must Close it.
func (c *Client) Do(method, uri string, header http.Header, body []byte) (*Exchange, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, uri, rd)
	if err != nil {
		return nil, fmt.Errorf("%s %q, request creation failed: %w", method, uri, err)
	}

	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	id := uuid.New()
	logger.Debugf("exchange %s: %s %s", id, method, uri)

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		logger.Debugf("exchange %s: failed: %v", id, err)
		return nil, err
	}

	logger.Debugf("exchange %s: %s", id, res.Status)

	x := NewExchange(res)
	x.ID = id
	x.RequestHeader = req.Header.Clone()

	return x, nil
}

func noRedirect(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}
