package apiclient

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssg-wsg/apiclient/auth"
	"github.com/ssg-wsg/apiclient/common"
)

func TestFetchWithToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.Header.Get("Authorization")))
	}))
	defer srv.Close()

	x, err := FetchWithToken(srv.URL, auth.Token{TokenType: "Bearer", AccessToken: "tok"})
	require.NoError(t, err)
	defer x.Close()

	b, err := io.ReadAll(x.Stream())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", string(b))
}

func TestFetchWithCertificate_missing_keystore(t *testing.T) {
	_, err := FetchWithCertificate("https://api.ssg-wsg.sg/skillsFramework/sectors",
		filepath.Join(t.TempDir(), "missing.p12"), "password")
	assert.ErrorIs(t, err, common.ErrCredentialLoad)
}

func TestAcquireToken_missing_credentials(t *testing.T) {
	_, err := AcquireToken("", "secret", "")
	assert.ErrorIs(t, err, common.ErrTokenExchange)
	assert.ErrorContains(t, err, "missing client_id")
}
