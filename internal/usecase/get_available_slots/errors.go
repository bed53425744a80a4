package get_available_slots

import "errors"

var (
	// ErrRoomNotFound is returned when the room does not exist.
	ErrRoomNotFound = errors.New("get_available_slots: room not found")

	// ErrInvalidInput is returned for malformed input data.
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal wraps storage and infrastructure failures.
	ErrInternal = errors.New("get_available_slots: internal error")
)
