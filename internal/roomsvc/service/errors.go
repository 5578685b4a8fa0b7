package service

import "errors"

// Error kinds returned by the service layer. Handlers translate each kind to
// a fixed HTTP status; store internals never reach the client.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
)
