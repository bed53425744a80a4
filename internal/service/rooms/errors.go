package rooms

import "errors"

var (
	// ErrRoomNotFound is returned when the room does not exist.
	ErrRoomNotFound = errors.New("room not found")

	// ErrInternal is returned on internal service errors.
	ErrInternal = errors.New("service: internal error")
)
