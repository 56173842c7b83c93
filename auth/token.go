// Copyright 2026 Contributors to the SSG API Client project.
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ssg-wsg/apiclient/common"
)

const (
	accessTokenField = "access_token"
	tokenTypeField   = "token_type"
)

// Token is the outcome of a client-credentials exchange. An empty field is
// unset: the token endpoint did not supply it, or it could not be extracted.
type Token struct {
	TokenType   string
	AccessToken string
}

// IsZero reports whether neither field is set.
func (o Token) IsZero() bool {
	return o.TokenType == "" && o.AccessToken == ""
}

// Complete reports whether both fields are set.
func (o Token) Complete() bool {
	return o.TokenType != "" && o.AccessToken != ""
}

// Header is the Authorization value for the token: the type and the value
// joined by one space, unset fields included as empty strings.
func (o Token) Header() string {
	return o.TokenType + " " + o.AccessToken
}

// TokenParser extracts a Token from the body of a token endpoint response.
type TokenParser interface {
	ParseToken(body string) (Token, error)
}

// NewTokenParser returns the parser registered under name: "json" or
// "split".
func NewTokenParser(name string) (TokenParser, error) {
	switch name {
	case "", "json":
		return JSONParser{}, nil
	case "split":
		return SplitParser{}, nil
	default:
		return nil, fmt.Errorf("unknown token parser %q", name)
	}
}

// JSONParser decodes the body as a JSON object and picks the access_token
// and token_type members; other members are ignored whatever their type. A
// body that is not such an object, or whose two members are not strings,
// yields an unset Token.
type JSONParser struct{}

func (JSONParser) ParseToken(body string) (Token, error) {
	var decoded struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}

	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		return Token{}, nil
	}

	return Token{
		TokenType:   decoded.TokenType,
		AccessToken: decoded.AccessToken,
	}, nil
}

// SplitParser is the positional extraction the gateway's sample clients
// use. The body is cut on every comma and each fragment on every double
// quote; a sub-token containing "access_token" (or, failing that,
// "token_type") takes its value from the sub-token two positions after the
// first sub-token equal to it. Later matches overwrite earlier ones.
//
// It only works on flat objects whose values contain neither commas nor
// quotes. A match with nothing two positions on stops the scan: the fields
// found so far are returned along with a TokenExchangeError.
type SplitParser struct{}

func (SplitParser) ParseToken(body string) (Token, error) {
	var tok Token

	for _, fragment := range splitTrimmed(body, ",") {
		parts := splitTrimmed(fragment, `"`)

		for _, p := range parts {
			var dst *string

			switch {
			case strings.Contains(p, accessTokenField):
				dst = &tok.AccessToken
			case strings.Contains(p, tokenTypeField):
				dst = &tok.TokenType
			default:
				continue
			}

			i := indexOf(parts, p) + 2
			if i >= len(parts) {
				return tok, common.Errorf(common.KindTokenExchange,
					"no value two positions after %q in %q", p, fragment)
			}

			*dst = parts[i]
		}
	}

	return tok, nil
}

// splitTrimmed is strings.Split without the trailing empty elements, so that
// a value left empty, as in "access_token":"", has nothing after it.
func splitTrimmed(s, sep string) []string {
	parts := strings.Split(s, sep)
	for len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

func indexOf(parts []string, s string) int {
	for i, p := range parts {
		if p == s {
			return i
		}
	}
	return -1
}
