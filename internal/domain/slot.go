package domain

import "github.com/mairie-chartrettes/SalleReservationService/pkg/types"

// TimeSlot is a half-open interval [Start, End) of exactly one clock hour.
// Multi-hour bookings are ordered sequences of contiguous slots.
type TimeSlot struct {
	Start types.TimeString
	End   types.TimeString
}

// Overlaps reports whether the two half-open intervals intersect.
// Back-to-back slots (one ending exactly when the other starts) do not
// overlap.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return s.Start.IsBefore(other.End) && s.End.IsAfter(other.Start)
}

// DurationMinutes returns the slot length in minutes, or an error when
// either bound is malformed.
func (s TimeSlot) DurationMinutes() (int, error) {
	return s.Start.MinutesUntil(s.End)
}

// Validate checks that both bounds are well-formed and that the slot is
// exactly one hour long.
func (s TimeSlot) Validate() error {
	if err := s.Start.Validate(); err != nil {
		return err
	}
	if err := s.End.Validate(); err != nil {
		return err
	}
	minutes, err := s.DurationMinutes()
	if err != nil {
		return err
	}
	if minutes != SlotDurationMinutes {
		return ErrSlotNotOneHour
	}
	return nil
}
