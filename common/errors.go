// Copyright 2026 Contributors to the SSG API Client project.
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"errors"
	"fmt"
)

// Kind classifies a failure by the pipeline stage it happened in.
type Kind string

const (
	KindCredentialLoad Kind = "CredentialLoadError"
	KindTLSSetup       Kind = "TLSSetupError"
	KindTokenExchange  Kind = "TokenExchangeError"
	KindTransport      Kind = "TransportError"
)

// Error is a failure of a given Kind with its underlying cause.
type Error struct {
	Kind Kind
	Err  error
}

// Sentinels for errors.Is. They carry no cause.
var (
	ErrCredentialLoad = &Error{Kind: KindCredentialLoad}
	ErrTLSSetup       = &Error{Kind: KindTLSSetup}
	ErrTokenExchange  = &Error{Kind: KindTokenExchange}
	ErrTransport      = &Error{Kind: KindTransport}
)

func (o *Error) Error() string {
	if o.Err == nil {
		return string(o.Kind)
	}
	return fmt.Sprintf("%s: %v", o.Kind, o.Err)
}

func (o *Error) Unwrap() error {
	return o.Err
}

// Is matches any *Error of the same Kind.
func (o *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == o.Kind
}

// NewError wraps err into an Error of the given kind. A nil err yields nil.
func NewError(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// Errorf builds an Error of the given kind from a formatted cause.
func Errorf(kind Kind, format string, a ...interface{}) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, a...)}
}
