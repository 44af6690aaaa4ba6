package adapter

import (
	"errors"
	"fmt"
)

// Transport error classes. Every adapter method returns either nil or an
// error wrapping exactly one of these sentinels, so callers can switch on
// errors.Is without inspecting status codes.
var (
	// ErrUnauthorized is returned for HTTP 401. The adapter additionally
	// fires the unauthorized handler, at most once per failing call.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrBadRequest is returned for HTTP 4xx other than 401/404.
	ErrBadRequest = errors.New("bad request")

	// ErrNotFound is returned for HTTP 404.
	ErrNotFound = errors.New("not found")

	// ErrServer is returned for HTTP 5xx.
	ErrServer = errors.New("server error")

	// ErrUnavailable is returned for transport-level failures: timeouts,
	// connection refusals, DNS errors. No HTTP response was received.
	ErrUnavailable = errors.New("server unavailable")
)

// APIError is a classified non-2xx response. It unwraps to one of the
// sentinel classes above and carries the server-provided detail text so
// callers can surface it verbatim.
type APIError struct {
	// Status is the HTTP status code.
	Status int
	// Detail is the server's human-readable error text, or the HTTP
	// status text when the body had none.
	Detail string

	class error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%v: %s", e.class, e.Detail)
}

func (e *APIError) Unwrap() error {
	return e.class
}
