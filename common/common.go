// Copyright 2021 Contributors to the SSG API Client project.
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"fmt"
	"net/url"
)

const (
	FormMediaType = "application/x-www-form-urlencoded"
	JSONMediaType = "application/json"
)

// APIVersionHeader pins a request to one version of a gateway API. Without
// it the gateway serves the latest version.
const APIVersionHeader = "x-api-version"

// ParseAbsoluteURI parses uri and checks that it is absolute.
func ParseAbsoluteURI(uri string) (*url.URL, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("malformed URI: %w", err)
	}

	if !u.IsAbs() {
		return nil, fmt.Errorf("URI is not absolute: %q", uri)
	}

	return u, nil
}

// ParseHTTPSURI is ParseAbsoluteURI restricted to the https scheme.
func ParseHTTPSURI(uri string) (*url.URL, error) {
	u, err := ParseAbsoluteURI(uri)
	if err != nil {
		return nil, err
	}

	if u.Scheme != "https" {
		return nil, fmt.Errorf("expected HTTPS scheme, got %q", u.Scheme)
	}

	return u, nil
}
