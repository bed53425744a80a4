package get_available_slots

import (
	"github.com/mairie-chartrettes/SalleReservationService/internal/domain"

	getAvailableSlots "github.com/mairie-chartrettes/SalleReservationService/internal/usecase/get_available_slots"
)

// SlotView is one entry of the day grid.
type SlotView struct {
	Start     string `json:"start"` // "09:00"
	End       string `json:"end"`   // "10:00"
	Available bool   `json:"available"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	RoomID int64      `json:"roomId"`
	Date   string     `json:"date"` // "2025-07-05"
	Slots  []SlotView `json:"slots"`
}

// FromUseCaseResponse converts the usecase response into the HTTP body.
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotView, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotView{
			Start:     s.Start.String(),
			End:       s.End.String(),
			Available: s.Available,
		}
	}

	return &AvailableSlotsResponse{
		RoomID: resp.RoomID,
		Date:   resp.Date.Format(domain.DateFormat),
		Slots:  slots,
	}
}
