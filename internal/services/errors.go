package services

import "errors"

// Common service errors. Handlers map these to HTTP failures; the services
// themselves never swallow them into silent no-ops.
var (
	ErrNotFound       = errors.New("record not found")
	ErrInvalidState   = errors.New("invalid state transition")
	ErrValidation     = errors.New("invalid input")
	ErrEmptySelection = errors.New("empty selection")
)
