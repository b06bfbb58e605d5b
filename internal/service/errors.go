package service

import "errors"

// Sentinel errors mapped to HTTP statuses by the handler layer.
// Anything else surfacing from a service is treated as a store failure
// and reported as a generic 500.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	// ErrInvalid marks a request the service rejected on business rules
	// (bad dates, credit checks, state transitions). Only errors wrapping
	// it are safe to echo back to the client.
	ErrInvalid = errors.New("invalid request")
)
