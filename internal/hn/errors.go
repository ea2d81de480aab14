package hn

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedStatus matches any non-2xx response.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
	// ErrMalformedResponse matches bodies that are not JSON or lack "hits".
	ErrMalformedResponse = errors.New("malformed search response")
)

// StatusError reports a non-2xx response from the search endpoint.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error: %d", e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}
