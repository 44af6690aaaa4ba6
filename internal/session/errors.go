package session

import "errors"

var (
	// ErrEmptyMessage rejects whitespace-only input before any I/O.
	ErrEmptyMessage = errors.New("empty message")

	// ErrSendInFlight rejects a second send while one is outstanding.
	ErrSendInFlight = errors.New("send already in flight")
)
