package availability

import "errors"

var (
	// ErrStorage is returned when the reservation store cannot be read.
	// A conflict is never reported through an error, only through the
	// boolean result.
	ErrStorage = errors.New("availability: reservation store unavailable")
)
