package get_available_slots

import (
	"time"

	"github.com/mairie-chartrettes/SalleReservationService/pkg/types"
)

// Request asks for the slot grid of one room on one day.
type Request struct {
	RoomID int64
	Date   time.Time
}

// Slot is one grid entry of the day view.
type Slot struct {
	Start     types.TimeString
	End       types.TimeString
	Available bool
}

// Response is the full slot grid for the requested day.
type Response struct {
	RoomID int64
	Date   time.Time
	Slots  []Slot
}
