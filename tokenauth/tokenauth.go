// Copyright 2026 Contributors to the SSG API Client project.
// SPDX-License-Identifier: Apache-2.0

package tokenauth

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/juju/loggo/v2"
	"github.com/ssg-wsg/apiclient/auth"
	"github.com/ssg-wsg/apiclient/common"
	"github.com/ssg-wsg/apiclient/render"
)

const grantClientCredentials = "grant_type=client_credentials"

var logger = loggo.GetLogger("ssgapi.tokenauth")

// UnsetTokenPolicy decides what FetchWithToken does with a Token that has
// neither field set.
type UnsetTokenPolicy int

const (
	// AttemptAnyway sends the GET with the Authorization value built from
	// the empty fields and lets the server refuse it.
	AttemptAnyway UnsetTokenPolicy = iota
	// ShortCircuit fails with a TokenExchangeError without sending the GET.
	ShortCircuit
)

// ExchangeConfig holds the context of a client-credentials token exchange and
// of the request it authorizes
type ExchangeConfig struct {
	Client        *common.Client            // HTTP(s) client connection configuration
	Authenticator *auth.Oauth2Authenticator // client credentials and token endpoint
	Parser        auth.TokenParser          // token extraction, auth.JSONParser if nil
	UnsetToken    UnsetTokenPolicy          // handling of a token with no field set
	Renderer      *render.Renderer          // output of Run, standard output if nil
	APIVersion    string                    // x-api-version of the GET, latest if empty
}

// AcquireToken posts a client-credentials grant to the token endpoint and
// extracts the Token from the response. The status of the response is not
// checked: a non-2xx answer is logged and extraction is attempted anyway,
// typically yielding an unset Token. Fields the response lacks stay unset.
func (cfg ExchangeConfig) AcquireToken() (auth.Token, error) {
	if err := cfg.check(); err != nil {
		return auth.Token{}, err
	}

	basic, err := cfg.Authenticator.EncodeHeader()
	if err != nil {
		return auth.Token{}, common.NewError(common.KindTokenExchange, err)
	}

	header := http.Header{}
	header.Set("Authorization", basic)

	x, err := cfg.client().PostResource(
		[]byte(grantClientCredentials),
		common.FormMediaType,
		cfg.Authenticator.TokenURL,
		header,
	)
	if err != nil {
		return auth.Token{}, common.Errorf(common.KindTokenExchange,
			"token request failed: %w", err)
	}
	defer x.Close()

	raw, err := io.ReadAll(x.Stream())
	if err != nil {
		return auth.Token{}, common.Errorf(common.KindTokenExchange,
			"reading token response: %w", err)
	}

	if x.StatusCode/100 != 2 {
		logger.Warningf("token endpoint answered %s: %v",
			x.Status, common.DescribeResponse(x.StatusCode, x.Header, raw))
	}

	tok, err := cfg.parser().ParseToken(joinLines(string(raw)))

	if !tok.Complete() {
		logger.Warningf("token response from %s lacks %s",
			cfg.Authenticator.TokenURL, missingFields(tok))
	}

	return tok, err
}

// FetchWithToken issues one GET to uri with "Authorization: <type> <value>".
// The caller must Close the returned Exchange.
func (cfg ExchangeConfig) FetchWithToken(uri string, tok auth.Token) (*common.Exchange, error) {
	if _, err := common.ParseAbsoluteURI(uri); err != nil {
		return nil, fmt.Errorf("bad URL: %w", err)
	}

	if tok.IsZero() {
		if cfg.UnsetToken == ShortCircuit {
			return nil, common.Errorf(common.KindTokenExchange,
				"no token to authorize GET %s", uri)
		}
		logger.Warningf("no token extracted, GET %s carries an empty authorization", uri)
	}

	header := http.Header{}
	header.Set("Authorization", tok.Header())
	if cfg.APIVersion != "" {
		header.Set(common.APIVersionHeader, cfg.APIVersion)
	}

	x, err := cfg.client().GetResource(uri, header)
	if err != nil {
		return nil, common.Errorf(common.KindTransport, "GET %s failed: %w", uri, err)
	}

	return x, nil
}

// Run acquires a token, fetches uri with it and renders the response. Unless
// UnsetToken is ShortCircuit, a failed token exchange is logged and the GET is
// sent regardless; both failures are reported if the GET fails too.
func (cfg ExchangeConfig) Run(uri string) error {
	tok, tokErr := cfg.AcquireToken()
	if tokErr != nil {
		if cfg.UnsetToken == ShortCircuit {
			return tokErr
		}
		logger.Errorf("%v", tokErr)
	}

	x, err := cfg.FetchWithToken(uri, tok)
	if err != nil {
		return errors.Join(tokErr, err)
	}
	defer x.Close()

	r := cfg.Renderer
	if r == nil {
		r = render.New(nil)
	}

	return r.Render(x)
}

func (cfg ExchangeConfig) client() *common.Client {
	if cfg.Client == nil {
		return common.NewClient()
	}
	return cfg.Client
}

func (cfg ExchangeConfig) parser() auth.TokenParser {
	if cfg.Parser == nil {
		return auth.JSONParser{}
	}
	return cfg.Parser
}

func (cfg ExchangeConfig) check() error {
	if cfg.Authenticator == nil {
		return errors.New("bad configuration: no client credentials")
	}

	return nil
}

// joinLines concatenates the lines of s, dropping their terminators.
func joinLines(s string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}

func missingFields(tok auth.Token) string {
	var missing []string
	if tok.AccessToken == "" {
		missing = append(missing, "access_token")
	}
	if tok.TokenType == "" {
		missing = append(missing, "token_type")
	}
	return strings.Join(missing, " and ")
}
