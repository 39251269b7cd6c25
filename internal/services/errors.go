package services

import "errors"

// Sentinel errors mapped to HTTP statuses by the handlers.
var (
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrEmptySelection    = errors.New("empty selection")
	ErrUnknownStatus     = errors.New("unknown status")
	ErrStatusNotVisible  = errors.New("status not selectable for role")
	ErrInvalidTransition = errors.New("invalid assignment transition")
	ErrInvalidRange      = errors.New("invalid date range")
)
