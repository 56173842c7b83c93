package tokenauth

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssg-wsg/apiclient/auth"
	"github.com/ssg-wsg/apiclient/common"
	"github.com/ssg-wsg/apiclient/render"
)

const (
	testTokenPath    = "/dp-oauth/oauth/token"
	testResourcePath = "/courses/v1/sectors"
	testResourceURL  = "https://public-api.ssg-wsg.sg" + testResourcePath
)

func testAuthenticator() *auth.Oauth2Authenticator {
	return &auth.Oauth2Authenticator{
		TokenURL:     auth.DefaultTokenURL,
		ClientID:     "myclient",
		ClientSecret: "deadbeef",
	}
}

// gateway serves tokenBody on the token endpoint and echoes the Authorization
// header of resource requests.
type gateway struct {
	t          *testing.T
	tokenCode  int
	tokenBody  string
	tokenHits  int32
	fetchHits  int32
	fetchAuthz []string
}

func (o *gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case testTokenPath:
		atomic.AddInt32(&o.tokenHits, 1)

		assert.Equal(o.t, http.MethodPost, r.Method)
		assert.Equal(o.t, common.FormMediaType, r.Header.Get("Content-Type"))
		assert.Equal(o.t, "Basic bXljbGllbnQ6ZGVhZGJlZWY=", r.Header.Get("Authorization"))

		b, err := io.ReadAll(r.Body)
		assert.NoError(o.t, err)
		assert.Equal(o.t, "grant_type=client_credentials", string(b))

		code := o.tokenCode
		if code == 0 {
			code = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json;charset=UTF-8")
		w.WriteHeader(code)
		_, _ = w.Write([]byte(o.tokenBody))
	case testResourcePath:
		atomic.AddInt32(&o.fetchHits, 1)

		assert.Equal(o.t, http.MethodGet, r.Method)
		authz := r.Header.Get("Authorization")
		o.fetchAuthz = append(o.fetchAuthz, authz)

		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("authorized with " + authz))
	default:
		o.t.Errorf("unexpected path %s", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestExchangeConfig_AcquireToken(t *testing.T) {
	gw := &gateway{
		t:         t,
		tokenBody: "{\n  \"access_token\": \"tok\",\n  \"token_type\": \"Bearer\",\n  \"expires_in\": 1799\n}\n",
	}

	client, teardown := common.NewTestingHTTPSClient(gw)
	defer teardown()

	for _, parser := range []auth.TokenParser{nil, auth.JSONParser{}, auth.SplitParser{}} {
		cfg := ExchangeConfig{
			Client:        client,
			Authenticator: testAuthenticator(),
			Parser:        parser,
		}

		tok, err := cfg.AcquireToken()
		require.NoError(t, err)
		assert.Equal(t, auth.Token{TokenType: "Bearer", AccessToken: "tok"}, tok)
	}

	assert.EqualValues(t, 3, gw.tokenHits)
}

func TestExchangeConfig_AcquireToken_non_2xx(t *testing.T) {
	gw := &gateway{
		t:         t,
		tokenCode: http.StatusUnauthorized,
		tokenBody: `{"error":"invalid_client","error_description":"Client authentication failed"}`,
	}

	client, teardown := common.NewTestingHTTPSClient(gw)
	defer teardown()

	cfg := ExchangeConfig{Client: client, Authenticator: testAuthenticator()}

	tok, err := cfg.AcquireToken()
	require.NoError(t, err)
	assert.True(t, tok.IsZero())
}

func TestExchangeConfig_AcquireToken_error_status_with_token(t *testing.T) {
	gw := &gateway{
		t:         t,
		tokenCode: http.StatusBadRequest,
		tokenBody: `{"access_token":"tok","token_type":"Bearer"}`,
	}

	client, teardown := common.NewTestingHTTPSClient(gw)
	defer teardown()

	cfg := ExchangeConfig{Client: client, Authenticator: testAuthenticator()}

	tok, err := cfg.AcquireToken()
	require.NoError(t, err)
	assert.Equal(t, "tok", tok.AccessToken)
}

func TestExchangeConfig_AcquireToken_split_out_of_range(t *testing.T) {
	gw := &gateway{t: t, tokenBody: `{"token_type":"Bearer","access_token"}`}

	client, teardown := common.NewTestingHTTPSClient(gw)
	defer teardown()

	cfg := ExchangeConfig{
		Client:        client,
		Authenticator: testAuthenticator(),
		Parser:        auth.SplitParser{},
	}

	tok, err := cfg.AcquireToken()
	assert.ErrorIs(t, err, common.ErrTokenExchange)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.Empty(t, tok.AccessToken)
}

func TestExchangeConfig_AcquireToken_transport_failure(t *testing.T) {
	client, teardown := common.NewTestingHTTPSClient(http.NotFoundHandler())
	teardown()

	cfg := ExchangeConfig{Client: client, Authenticator: testAuthenticator()}

	_, err := cfg.AcquireToken()
	assert.ErrorIs(t, err, common.ErrTokenExchange)
	assert.ErrorContains(t, err, "token request failed")
}

func TestExchangeConfig_AcquireToken_bad_credentials(t *testing.T) {
	cfg := ExchangeConfig{Authenticator: &auth.Oauth2Authenticator{TokenURL: auth.DefaultTokenURL}}

	_, err := cfg.AcquireToken()
	assert.ErrorIs(t, err, common.ErrTokenExchange)
	assert.ErrorContains(t, err, "missing client_id")

	_, err = ExchangeConfig{}.AcquireToken()
	assert.EqualError(t, err, "bad configuration: no client credentials")
}

func TestExchangeConfig_FetchWithToken(t *testing.T) {
	gw := &gateway{t: t}

	client, teardown := common.NewTestingHTTPSClient(gw)
	defer teardown()

	cfg := ExchangeConfig{Client: client}

	x, err := cfg.FetchWithToken(testResourceURL, auth.Token{TokenType: "Bearer", AccessToken: "tok"})
	require.NoError(t, err)
	defer x.Close()

	assert.Equal(t, http.StatusOK, x.StatusCode)
	assert.Equal(t, "Bearer tok", x.RequestHeader.Get("Authorization"))

	b, err := io.ReadAll(x.Stream())
	require.NoError(t, err)
	assert.Equal(t, "authorized with Bearer tok", string(b))
}

func TestExchangeConfig_FetchWithToken_api_version(t *testing.T) {
	var seen []string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get(common.APIVersionHeader))
	})

	client, teardown := common.NewTestingHTTPSClient(h)
	defer teardown()

	tok := auth.Token{TokenType: "Bearer", AccessToken: "tok"}

	for _, version := range []string{"v1.2", ""} {
		x, err := ExchangeConfig{Client: client, APIVersion: version}.FetchWithToken(testResourceURL, tok)
		require.NoError(t, err)
		x.Close()
	}

	assert.Equal(t, []string{"v1.2", ""}, seen)
}

func TestExchangeConfig_FetchWithToken_unset_token(t *testing.T) {
	gw := &gateway{t: t}

	client, teardown := common.NewTestingHTTPSClient(gw)
	defer teardown()

	cfg := ExchangeConfig{Client: client}

	x, err := cfg.FetchWithToken(testResourceURL, auth.Token{})
	require.NoError(t, err)
	defer x.Close()

	assert.EqualValues(t, 1, gw.fetchHits)
	// the " " placeholder is trimmed on the wire
	assert.Equal(t, []string{""}, gw.fetchAuthz)
}

func TestExchangeConfig_FetchWithToken_short_circuit(t *testing.T) {
	gw := &gateway{t: t}

	client, teardown := common.NewTestingHTTPSClient(gw)
	defer teardown()

	cfg := ExchangeConfig{Client: client, UnsetToken: ShortCircuit}

	_, err := cfg.FetchWithToken(testResourceURL, auth.Token{})
	assert.ErrorIs(t, err, common.ErrTokenExchange)
	assert.EqualValues(t, 0, gw.fetchHits)
}

func TestExchangeConfig_FetchWithToken_bad_url(t *testing.T) {
	_, err := ExchangeConfig{}.FetchWithToken("courses/v1", auth.Token{})
	assert.EqualError(t, err, `bad URL: URI is not absolute: "courses/v1"`)
}

func TestExchangeConfig_FetchWithToken_transport_failure(t *testing.T) {
	client, teardown := common.NewTestingHTTPSClient(http.NotFoundHandler())
	teardown()

	_, err := ExchangeConfig{Client: client}.FetchWithToken(testResourceURL, auth.Token{AccessToken: "x"})
	assert.ErrorIs(t, err, common.ErrTransport)
}

func TestExchangeConfig_Run(t *testing.T) {
	gw := &gateway{t: t, tokenBody: `{"access_token":"tok","token_type":"Bearer"}`}

	client, teardown := common.NewTestingHTTPSClient(gw)
	defer teardown()

	var out bytes.Buffer
	cfg := ExchangeConfig{
		Client:        client,
		Authenticator: testAuthenticator(),
		Renderer:      render.New(&out),
	}

	require.NoError(t, cfg.Run(testResourceURL))

	assert.EqualValues(t, 1, gw.tokenHits)
	assert.EqualValues(t, 1, gw.fetchHits)
	assert.True(t, strings.HasPrefix(out.String(), "\nStatus: 200 OK\n"))
	assert.Contains(t, out.String(), "Key: Content-Type  Value: [text/plain]\n")
	assert.True(t, strings.HasSuffix(out.String(), "\n\nauthorized with Bearer tok\n"))
}

func TestExchangeConfig_Run_unset_token(t *testing.T) {
	gw := &gateway{t: t, tokenCode: http.StatusUnauthorized, tokenBody: `{"error":"invalid_client"}`}

	client, teardown := common.NewTestingHTTPSClient(gw)
	defer teardown()

	var out bytes.Buffer
	cfg := ExchangeConfig{
		Client:        client,
		Authenticator: testAuthenticator(),
		Renderer:      render.New(&out),
	}

	require.NoError(t, cfg.Run(testResourceURL))
	assert.EqualValues(t, 1, gw.fetchHits)

	gw.fetchHits = 0
	cfg.UnsetToken = ShortCircuit

	err := cfg.Run(testResourceURL)
	assert.ErrorIs(t, err, common.ErrTokenExchange)
	assert.EqualValues(t, 0, gw.fetchHits)
}

func TestExchangeConfig_Run_token_error_then_fetch(t *testing.T) {
	gw := &gateway{t: t, tokenBody: `{"access_token"}`}

	client, teardown := common.NewTestingHTTPSClient(gw)
	defer teardown()

	var out bytes.Buffer
	cfg := ExchangeConfig{
		Client:        client,
		Authenticator: testAuthenticator(),
		Parser:        auth.SplitParser{},
		Renderer:      render.New(&out),
	}

	require.NoError(t, cfg.Run(testResourceURL))
	assert.EqualValues(t, 1, gw.fetchHits)
}

func TestJoinLines(t *testing.T) {
	assert.Equal(t, `{"a":"b","c":"d"}`, joinLines("{\"a\":\"b\",\r\n\"c\":\"d\"}\n"))
	assert.Equal(t, "", joinLines(""))
}
