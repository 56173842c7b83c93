// Copyright 2026 Contributors to the SSG API Client project.
// SPDX-License-Identifier: Apache-2.0

// Package config loads the description of one gateway call from YAML:
//
//	method: oauth2
//	url: https://public-api.ssg-wsg.sg/courses/directory
//	timeout: 30s
//	api_version: v1.2
//	decrypt_key: env:SSG_ENCRYPTION_KEY
//	token_parser: json
//	oauth2:
//	  client_id: my-client
//	  client_secret: keyring:ssgapi/my-client
//
// or, for a certificate:
//
//	method: certificate
//	url: https://api.ssg-wsg.sg/skillsFramework/sectors
//	certificate:
//	  keystore_path: /path/to/example.p12
//	  keystore_password: env:SSG_KEYSTORE_PASSWORD
//
// Only the section of the selected method is used.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ssg-wsg/apiclient/auth"
	"github.com/ssg-wsg/apiclient/common"
	"github.com/ssg-wsg/apiclient/payload"
	"github.com/ssg-wsg/apiclient/secrets"
	"gopkg.in/yaml.v3"
)

// secretFields name the section members that may hold secret references.
var secretFields = []string{"keystore_password", "client_secret", "client_id"}

// Config describes one gateway call.
type Config struct {
	Method       auth.Method            `yaml:"method"`
	URL          string                 `yaml:"url"`
	Timeout      time.Duration          `yaml:"timeout"`
	TokenParser  string                 `yaml:"token_parser"`
	ShortCircuit bool                   `yaml:"short_circuit"`
	APIVersion   string                 `yaml:"api_version"`
	DecryptKey   string                 `yaml:"decrypt_key"`
	Certificate  map[string]interface{} `yaml:"certificate"`
	OAuth2       map[string]interface{} `yaml:"oauth2"`
}

// Default returns a Config with no method selected.
func Default() *Config {
	return &Config{
		Timeout:     common.DefaultTimeout,
		TokenParser: "json",
	}
}

// Load reads the YAML file at path over Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML over Default.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	return cfg, nil
}

// Validate checks the fields that do not belong to a credential section.
func (o *Config) Validate() error {
	if o.Method == "" {
		return errors.New("missing method")
	}

	m := o.Method
	if err := m.Set(string(o.Method)); err != nil {
		return err
	}
	o.Method = m

	if o.URL == "" {
		return errors.New("missing url")
	}

	if _, err := common.ParseAbsoluteURI(o.URL); err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	if o.Timeout < 0 {
		return fmt.Errorf("negative timeout %s", o.Timeout)
	}

	if _, err := auth.NewTokenParser(o.TokenParser); err != nil {
		return err
	}

	return nil
}

// Section returns the credential section of the selected method.
func (o *Config) Section() map[string]interface{} {
	if o.Method == auth.MethodCertificate {
		return o.Certificate
	}
	return o.OAuth2
}

// Authenticator validates the Config, resolves secret references in the
// selected section and returns the configured authenticator.
func (o *Config) Authenticator() (auth.IAuthenticator, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	section, err := resolveSecrets(o.Section())
	if err != nil {
		return nil, err
	}

	a, err := auth.NewAuthenticator(o.Method)
	if err != nil {
		return nil, err
	}

	if err := a.Configure(section); err != nil {
		return nil, fmt.Errorf("%s: %w", o.Method, err)
	}

	return a, nil
}

// Cipher returns the cipher for encrypted response bodies, or nil when no
// decrypt_key is set. The key may be a secret reference.
func (o *Config) Cipher() (*payload.Cipher, error) {
	if o.DecryptKey == "" {
		return nil, nil
	}

	key, err := secrets.Resolve(o.DecryptKey)
	if err != nil {
		return nil, fmt.Errorf("decrypt_key: %w", err)
	}

	c, err := payload.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("decrypt_key: %w", err)
	}

	return c, nil
}

// resolveSecrets returns a copy of section with secret references replaced
// by the secrets they name.
func resolveSecrets(section map[string]interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(section))
	for k, v := range section {
		out[k] = v
	}

	for _, f := range secretFields {
		ref, ok := out[f].(string)
		if !ok {
			continue
		}

		v, err := secrets.Resolve(ref)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		out[f] = v
	}

	return out, nil
}
