package common

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"

	"github.com/moogar0880/problems"
	"golang.org/x/oauth2"
)

type ProblemError struct {
	problems.DefaultProblem
}

func (o *ProblemError) Error() string {
	return fmt.Sprintf("%d %s: %s", o.ProblemStatus(), o.ProblemTitle(), o.Detail)
}

// DescribeResponse explains a response whose status is not one of expected.
// It returns nil when the status is expected. Bodies in RFC 7807 problem
// format yield a *ProblemError, bodies in RFC 6749 error format an
// *oauth2.RetrieveError; anything else a generic error.
func DescribeResponse(code int, header http.Header, body []byte, expected ...int) error {
	for _, exp := range expected {
		if code == exp {
			return nil
		}
	}

	ct, _, _ := mime.ParseMediaType(header.Get("Content-Type"))

	switch ct {
	case problems.ProblemMediaType:
		var prob ProblemError

		if err := json.Unmarshal(body, &prob.DefaultProblem); err != nil {
			return fmt.Errorf(
				"could not decode problem response (status %d): %w",
				code,
				err,
			)
		}

		return &prob
	case JSONMediaType:
		var oe struct {
			Code        string `json:"error"`
			Description string `json:"error_description"`
			URI         string `json:"error_uri"`
		}

		if err := json.Unmarshal(body, &oe); err == nil && oe.Code != "" {
			return &oauth2.RetrieveError{
				Response:         &http.Response{StatusCode: code, Status: http.StatusText(code), Header: header},
				Body:             body,
				ErrorCode:        oe.Code,
				ErrorDescription: oe.Description,
				ErrorURI:         oe.URI,
			}
		}
	}

	return fmt.Errorf("unexpected HTTP response code %d", code)
}
