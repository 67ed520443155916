package api

import "errors"

var (
	// ErrUnavailable means the server could not be reached at all.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized covers 401/403 responses.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrMalformedResponse means the server answered but the body did not
	// match the expected shape (missing required fields, wrong types).
	ErrMalformedResponse = errors.New("malformed response")

	// ErrRequestFailed covers any other non-success response; the wrapped
	// message carries the server's explanation when one was given.
	ErrRequestFailed = errors.New("request failed")
)
