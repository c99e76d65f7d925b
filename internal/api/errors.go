// Package api provides the HTTP client for the Mini AI Analyst backend.
package api

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse indicates the backend answered with a success status
// but the body was missing a required field. Wrapped with context naming the
// missing field; detect with errors.Is.
var ErrMalformedResponse = errors.New("malformed response")

// StatusError is returned when the backend rejects a request with a
// non-success HTTP status. Detail carries the backend's error message when
// one was parseable from the body.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("request rejected: status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("request rejected: status %d", e.StatusCode)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == code
}
