package carousel

import "errors"

var (
	// ErrInvalidJSON is returned when an imported document is not JSON.
	ErrInvalidJSON = errors.New("invalid JSON")
	// ErrMissingSchemaKey is returned when an imported document has no
	// carousel under types.
	ErrMissingSchemaKey = errors.New(`no "twilio/carousel" in pasted JSON`)
)
