// Copyright 2026 Contributors to the SSG API Client project.
// SPDX-License-Identifier: Apache-2.0

// Package secrets resolves secret references found in configuration.
//
// A reference is one of
//
//	env:NAME              the value of environment variable NAME
//	keyring:SERVICE/USER  the item stored in the system keyring
//
// Any other string is taken literally.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	envPrefix     = "env:"
	keyringPrefix = "keyring:"
)

// Resolve returns the secret ref refers to.
func Resolve(ref string) (string, error) {
	switch {
	case strings.HasPrefix(ref, envPrefix):
		name := strings.TrimPrefix(ref, envPrefix)
		v, ok := os.LookupEnv(name)
		if !ok {
			return "", fmt.Errorf("environment variable %s is not set", name)
		}
		return v, nil
	case strings.HasPrefix(ref, keyringPrefix):
		service, user, err := splitKeyringRef(ref)
		if err != nil {
			return "", err
		}
		v, err := keyring.Get(service, user)
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return "", fmt.Errorf("no keyring item for %s/%s", service, user)
			}
			return "", fmt.Errorf("keyring lookup %s/%s: %w", service, user, err)
		}
		return v, nil
	default:
		return ref, nil
	}
}

// Store saves secret in the system keyring under a keyring: reference.
func Store(ref, secret string) error {
	service, user, err := splitKeyringRef(ref)
	if err != nil {
		return err
	}

	if err := keyring.Set(service, user, secret); err != nil {
		return fmt.Errorf("keyring store %s/%s: %w", service, user, err)
	}

	return nil
}

func splitKeyringRef(ref string) (service, user string, err error) {
	if !strings.HasPrefix(ref, keyringPrefix) {
		return "", "", fmt.Errorf("not a keyring reference: %q", ref)
	}

	service, user, ok := strings.Cut(strings.TrimPrefix(ref, keyringPrefix), "/")
	if !ok || service == "" || user == "" {
		return "", "", fmt.Errorf("malformed keyring reference %q, want keyring:SERVICE/USER", ref)
	}

	return service, user, nil
}
