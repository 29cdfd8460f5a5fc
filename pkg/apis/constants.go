package apis

import (
	"errors"
)

// HTTP header fields used by the conditional request handling.
const (
	IfMatch  = "If-Match"
	Location = "Location"
	ETag     = "ETag"

	// query parameters
	Filter   = "filter"
	Exploded = "exploded"
)

var (
	ErrMismatch     = errors.New("resource mismatch")
	ErrInternal     = errors.New("internal error")
	ErrInvalidValue = errors.New("invalid value")
)
