// Copyright 2023 Contributors to the SSG API Client project.
// SPDX-License-Identifier: Apache-2.0
package auth

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/ssg-wsg/apiclient/common"
)

// DefaultTokenURL is the gateway's client-credentials token endpoint.
const DefaultTokenURL = "https://public-api.ssg-wsg.sg/dp-oauth/oauth/token"

// Oauth2Authenticator holds the client-credentials of an application
// registered with the gateway. It authenticates the token request only: the
// Token obtained with it is handed to the caller, not kept.
type Oauth2Authenticator struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
}

func (o *Oauth2Authenticator) Configure(cfg map[string]interface{}) error {
	decoded := struct {
		TokenURL     string                 `mapstructure:"token_url"`
		ClientID     string                 `mapstructure:"client_id"`
		ClientSecret string                 `mapstructure:"client_secret"`
		Rest         map[string]interface{} `mapstructure:",remain"`
	}{}

	if err := mapstructure.Decode(cfg, &decoded); err != nil {
		return err
	}

	o.ClientID = decoded.ClientID
	o.ClientSecret = decoded.ClientSecret
	o.TokenURL = decoded.TokenURL
	if o.TokenURL == "" {
		o.TokenURL = DefaultTokenURL
	}

	if err := o.validate(); err != nil {
		return err
	}

	return checkUnexpected(decoded.Rest)
}

// Basic returns the authenticator used on the token request.
func (o *Oauth2Authenticator) Basic() *BasicAuthenticator {
	return &BasicAuthenticator{
		Username: o.ClientID,
		Password: o.ClientSecret,
	}
}

// EncodeHeader returns the Basic Authorization value sent to the token
// endpoint.
func (o *Oauth2Authenticator) EncodeHeader() (string, error) {
	if err := o.validate(); err != nil {
		return "", err
	}

	return o.Basic().EncodeHeader()
}

func (o *Oauth2Authenticator) validate() error {
	if o.ClientID == "" {
		return errors.New("missing client_id")
	}

	if o.ClientSecret == "" {
		return errors.New("missing client_secret")
	}

	if o.TokenURL == "" {
		return errors.New("missing token_url")
	}

	if _, err := common.ParseAbsoluteURI(o.TokenURL); err != nil {
		return fmt.Errorf("invalid token_url: %w", err)
	}

	return nil
}
