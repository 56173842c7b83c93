// Copyright 2026 Contributors to the SSG API Client project.
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"io"
	"net/http"

	"github.com/google/uuid"
)

// Exchange is one completed request/response pair. The response payload is
// exposed as two streams, only one of which is populated: Body for statuses
// below 400 and ErrorBody otherwise.
type Exchange struct {
	ID            uuid.UUID
	Method        string
	URL           string
	RequestHeader http.Header

	StatusCode int
	Status     string
	Header     http.Header

	Body      io.Reader
	ErrorBody io.Reader

	closer io.Closer
}

// NewExchange wraps res, routing its body to the success or error stream.
func NewExchange(res *http.Response) *Exchange {
	x := &Exchange{
		StatusCode: res.StatusCode,
		Status:     res.Status,
		Header:     res.Header,
		closer:     res.Body,
	}

	if res.Request != nil {
		x.Method = res.Request.Method
		x.URL = res.Request.URL.String()
	}

	if IsErrorStatus(res.StatusCode) {
		x.ErrorBody = res.Body
	} else {
		x.Body = res.Body
	}

	return x
}

// IsErrorStatus reports whether a response with this status carries its
// payload on the error stream.
func IsErrorStatus(code int) bool {
	return code >= http.StatusBadRequest
}

// Stream returns the stream selected by the status code. It never returns nil.
func (o *Exchange) Stream() io.Reader {
	var s io.Reader
	if IsErrorStatus(o.StatusCode) {
		s = o.ErrorBody
	} else {
		s = o.Body
	}

	if s == nil {
		return http.NoBody
	}

	return s
}

// Close releases the underlying response body. It is safe to call more than
// once and on an Exchange built by hand.
func (o *Exchange) Close() error {
	if o == nil || o.closer == nil {
		return nil
	}

	c := o.closer
	o.closer = nil

	return c.Close()
}
