package quote_reservation

import (
	"github.com/mairie-chartrettes/SalleReservationService/internal/domain"
	"github.com/mairie-chartrettes/SalleReservationService/pkg/types"

	quoteReservation "github.com/mairie-chartrettes/SalleReservationService/internal/usecase/quote_reservation"
)

// TimeSlotPayload is one requested slot.
type TimeSlotPayload struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// QuoteRequest HTTP request model
type QuoteRequest struct {
	RoomID int64             `json:"roomId"`
	Slots  []TimeSlotPayload `json:"slots"`
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	RoomID        int64   `json:"roomId"`
	TotalPrice    float64 `json:"totalPrice"`
	DepositAmount float64 `json:"depositAmount"`
	DurationType  string  `json:"durationType"`
	UserType      string  `json:"userType"`
	HourCount     int     `json:"hourCount"`
}

// ToUseCaseRequest converts the HTTP request, parsing slots.
func (r *QuoteRequest) ToUseCaseRequest(requesterID int64) (*quoteReservation.Request, error) {
	slots := make([]domain.TimeSlot, len(r.Slots))
	for i, s := range r.Slots {
		start, err := types.NewTimeStringFromString(s.Start)
		if err != nil {
			return nil, err
		}
		end, err := types.NewTimeStringFromString(s.End)
		if err != nil {
			return nil, err
		}
		slots[i] = domain.TimeSlot{Start: start, End: end}
	}

	return &quoteReservation.Request{
		RequesterID: requesterID,
		RoomID:      r.RoomID,
		Slots:       slots,
	}, nil
}

// FromUseCaseResponse converts the usecase response into the HTTP body.
func FromUseCaseResponse(resp *quoteReservation.Response) *QuoteResponse {
	return &QuoteResponse{
		RoomID:        resp.RoomID,
		TotalPrice:    resp.TotalPrice,
		DepositAmount: resp.DepositAmount,
		DurationType:  resp.DurationType,
		UserType:      resp.UserType,
		HourCount:     resp.HourCount,
	}
}
