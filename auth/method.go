// Copyright 2023 Contributors to the SSG API Client project.
// SPDX-License-Identifier: Apache-2.0

package auth

import "fmt"

// Method is the enumeration of the credential strategies supported against
// the API gateway. It implements the pflag.Value interface.
type Method string

const (
	MethodCertificate Method = "certificate"
	MethodOauth2      Method = "oauth2"
)

// String representation of the Method
func (o *Method) String() string {
	return string(*o)
}

// Set the value of the Method
func (o *Method) Set(v string) error {
	switch v {
	case "cert", "certificate", "mtls":
		*o = MethodCertificate
	case "oauth", "oauth2":
		*o = MethodOauth2
	default:
		return fmt.Errorf("unexpected Method %q", v)
	}

	return nil
}

// Type returns the string representing the type name (used by pflag).
func (o *Method) Type() string {
	return "Method"
}

// NewAuthenticator returns an unconfigured authenticator for the method.
func NewAuthenticator(m Method) (IAuthenticator, error) {
	switch m {
	case MethodCertificate:
		return &CertificateAuthenticator{}, nil
	case MethodOauth2:
		return &Oauth2Authenticator{}, nil
	default:
		return nil, fmt.Errorf("unexpected Method %q", string(m))
	}
}
