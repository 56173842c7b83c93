// Copyright 2023 Contributors to the SSG API Client project.
// SPDX-License-Identifier: Apache-2.0
package auth

// IAuthenticator is a credential that can be configured from a decoded config
// section and, where the strategy uses one, produce an Authorization header
// value. Strategies that authenticate in the TLS handshake return "".
type IAuthenticator interface {
	Configure(cfg map[string]interface{}) error
	EncodeHeader() (string, error)
}
