package service

import "errors"

var (
	// ErrInvalidInput marks malformed requests rejected before any
	// computation runs.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks lookups of entities the warehouse does not know.
	ErrNotFound = errors.New("not found")
	// ErrUpstream marks fact-store connectivity failures. The whole view
	// request fails; no partial result is returned.
	ErrUpstream = errors.New("fact store unavailable")
)
