package create_reservation

import "errors"

var (
	// ErrPastDate is returned when the requested date has already elapsed.
	ErrPastDate = errors.New("create_reservation: reservation date is in the past")

	// ErrAdvanceNotice is returned when the requested date falls inside
	// the minimum-notice window of the entry point.
	ErrAdvanceNotice = errors.New("create_reservation: reservation date is inside the advance-notice window")

	// ErrSlotConflict is returned when a requested slot overlaps an
	// existing pending or approved reservation.
	ErrSlotConflict = errors.New("create_reservation: requested slots conflict with an existing reservation")

	// ErrMissingAssociation is returned when an association-member
	// requester has no billing association.
	ErrMissingAssociation = errors.New("create_reservation: requester has no billing association")

	// ErrConfiguration is returned when a well-known billing association
	// is not provisioned. A setup defect, not a user error.
	ErrConfiguration = errors.New("create_reservation: well-known billing association not configured")

	// ErrMissingTariff is returned when the room has no tariff table for
	// the selected duration tier.
	ErrMissingTariff = errors.New("create_reservation: room has no tariff for this duration")

	// ErrRoomNotFound is returned when the room does not exist.
	ErrRoomNotFound = errors.New("create_reservation: room not found")

	// ErrUserNotFound is returned when the requester does not exist.
	ErrUserNotFound = errors.New("create_reservation: requester not found")

	// ErrInvalidInput is returned for malformed input data.
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal wraps storage and infrastructure failures.
	ErrInternal = errors.New("create_reservation: internal error")
)
