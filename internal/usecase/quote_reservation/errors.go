package quote_reservation

import "errors"

var (
	// ErrRoomNotFound is returned when the room does not exist.
	ErrRoomNotFound = errors.New("quote_reservation: room not found")

	// ErrUserNotFound is returned when the requester does not exist.
	ErrUserNotFound = errors.New("quote_reservation: requester not found")

	// ErrMissingTariff is returned when the room has no tariff table for
	// the selected duration tier.
	ErrMissingTariff = errors.New("quote_reservation: room has no tariff for this duration")

	// ErrInvalidInput is returned for malformed input data.
	ErrInvalidInput = errors.New("quote_reservation: invalid input data")

	// ErrInternal wraps storage and infrastructure failures.
	ErrInternal = errors.New("quote_reservation: internal error")
)
