package get_available_slots

import (
	"time"

	"github.com/mairie-chartrettes/SalleReservationService/internal/domain"
	"github.com/mairie-chartrettes/SalleReservationService/pkg/types"
)

// generateDayGrid builds the fixed one-hour slot grid between opening
// and closing time.
func generateDayGrid() ([]domain.TimeSlot, error) {
	open, err := types.NewTimeStringFromString(domain.OpeningTime)
	if err != nil {
		return nil, err
	}
	close, err := types.NewTimeStringFromString(domain.ClosingTime)
	if err != nil {
		return nil, err
	}

	grid := make([]domain.TimeSlot, 0)
	current := open

	for current.IsBefore(close) {
		end, err := current.AddMinutes(domain.SlotDurationMinutes)
		if err != nil {
			return nil, err
		}
		if end.IsAfter(close) {
			break
		}
		grid = append(grid, domain.TimeSlot{Start: current, End: end})
		current = end
	}

	return grid, nil
}

// markTakenSlots flags each grid slot taken when any blocking
// reservation overlaps it.
func markTakenSlots(grid []domain.TimeSlot, reservations []*domain.Reservation) []Slot {
	result := make([]Slot, len(grid))

	for i, gridSlot := range grid {
		taken := false
		for _, reservation := range reservations {
			if !reservation.IsBlocking() {
				continue
			}
			if reservation.ConflictsWith([]domain.TimeSlot{gridSlot}) {
				taken = true
				break
			}
		}
		result[i] = Slot{
			Start:     gridSlot.Start,
			End:       gridSlot.End,
			Available: !taken,
		}
	}

	return result
}

// isDateInPast compares dates at day precision.
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
