package reservations

import "errors"

var (
	// ErrReservationNotFound is returned when the reservation does not exist.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrRoomNotFound is returned when the room does not exist.
	ErrRoomNotFound = errors.New("room not found")

	// ErrUserNotFound is returned when the caller profile does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrAccessDenied is returned when the caller lacks the required rights.
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel is returned when the reservation is already terminal.
	ErrCannotCancel = errors.New("reservation cannot be cancelled")

	// ErrInvalidTransition is returned when the requested status change is
	// not allowed by the approval workflow.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrSlotConflict is returned when approving would double-book the room.
	ErrSlotConflict = errors.New("requested slots are no longer available")

	// ErrInvalidInput is returned on malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service errors.
	ErrInternal = errors.New("service: internal error")
)
