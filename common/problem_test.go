package common

import (
	"net/http"
	"testing"

	"github.com/moogar0880/problems"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestDescribeResponse_expected(t *testing.T) {
	assert.NoError(t, DescribeResponse(http.StatusOK, http.Header{}, nil, http.StatusOK, http.StatusCreated))
}

func TestDescribeResponse_problem(t *testing.T) {
	header := http.Header{"Content-Type": {problems.ProblemMediaType}}
	body := []byte(`{"type":"about:blank","title":"Forbidden","status":403,"detail":"API not subscribed"}`)

	err := DescribeResponse(http.StatusForbidden, header, body)

	var prob *ProblemError
	require.ErrorAs(t, err, &prob)
	assert.EqualError(t, err, "403 Forbidden: API not subscribed")
}

func TestDescribeResponse_bad_problem(t *testing.T) {
	header := http.Header{"Content-Type": {problems.ProblemMediaType}}

	err := DescribeResponse(http.StatusForbidden, header, []byte(`{`))
	assert.ErrorContains(t, err, "could not decode problem response (status 403)")
}

func TestDescribeResponse_oauth2(t *testing.T) {
	header := http.Header{"Content-Type": {"application/json;charset=UTF-8"}}
	body := []byte(`{"error":"invalid_client","error_description":"Client authentication failed"}`)

	err := DescribeResponse(http.StatusUnauthorized, header, body)

	var re *oauth2.RetrieveError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "invalid_client", re.ErrorCode)
	assert.Equal(t, "Client authentication failed", re.ErrorDescription)
	assert.Equal(t, http.StatusUnauthorized, re.Response.StatusCode)
}

func TestDescribeResponse_other(t *testing.T) {
	header := http.Header{"Content-Type": {"text/html"}}

	err := DescribeResponse(http.StatusBadGateway, header, []byte("<html></html>"))
	assert.EqualError(t, err, "unexpected HTTP response code 502")
}
