package create_reservation

import (
	"fmt"
	"time"

	"github.com/mairie-chartrettes/SalleReservationService/internal/domain"
)

// validateRequest checks the structural validity of the input before any
// storage access.
func validateRequest(req *Request) error {
	if req.RequesterID <= 0 {
		return fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}

	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.MinAdvanceDays < 0 {
		return fmt.Errorf("%w: minAdvanceDays must not be negative", ErrInvalidInput)
	}

	if len(req.Slots) == 0 {
		return fmt.Errorf("%w: at least one slot is required", ErrInvalidInput)
	}

	if len(req.Slots) > domain.MaxSlotsPerReservation {
		return fmt.Errorf("%w: at most %d slots per reservation", ErrInvalidInput, domain.MaxSlotsPerReservation)
	}

	for i, slot := range req.Slots {
		if err := slot.Validate(); err != nil {
			return fmt.Errorf("%w: slot %d: %v", ErrInvalidInput, i, err)
		}
	}

	// Slots must be an ordered contiguous sequence: each one starts
	// exactly where the previous one ends.
	for i := 1; i < len(req.Slots); i++ {
		if req.Slots[i].Start != req.Slots[i-1].End {
			return fmt.Errorf("%w: slots must be contiguous and ordered", ErrInvalidInput)
		}
	}

	if req.EventLabel != nil && len(*req.EventLabel) > domain.MaxEventLabelLength {
		return fmt.Errorf("%w: event label too long", ErrInvalidInput)
	}

	return nil
}

// validateDate applies the advance-notice rules, comparing dates at day
// precision.
func validateDate(date, now time.Time, minAdvanceDays int) error {
	dateOnly := truncateToDay(date)
	today := truncateToDay(now)

	if dateOnly.Before(today) {
		return ErrPastDate
	}

	earliest := today.AddDate(0, 0, minAdvanceDays)
	if dateOnly.Before(earliest) {
		return fmt.Errorf("%w: must book at least %d days in advance", ErrAdvanceNotice, minAdvanceDays)
	}

	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
