package create_reservation

import (
	"time"

	"github.com/mairie-chartrettes/SalleReservationService/internal/domain"
	"github.com/mairie-chartrettes/SalleReservationService/pkg/types"

	createReservation "github.com/mairie-chartrettes/SalleReservationService/internal/usecase/create_reservation"
)

// TimeSlotPayload is one requested slot.
type TimeSlotPayload struct {
	Start string `json:"start"` // "09:00"
	End   string `json:"end"`   // "10:00"
}

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	RoomID     int64             `json:"roomId"`
	Date       string            `json:"date"` // "2025-07-05"
	Slots      []TimeSlotPayload `json:"slots"`
	EventLabel *string           `json:"eventLabel,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID                   int64             `json:"id"`
	Code                 string            `json:"code"`
	RoomID               int64             `json:"roomId"`
	RequesterID          int64             `json:"requesterId"`
	BillingAssociationID int64             `json:"billingAssociationId"`
	Date                 string            `json:"date"`
	Slots                []TimeSlotPayload `json:"slots"`
	Status               string            `json:"status"`
	TotalPrice           float64           `json:"totalPrice"`
	DepositAmount        float64           `json:"depositAmount"`
	DurationType         string            `json:"durationType"`
	UserType             string            `json:"userType"`
	HourCount            int               `json:"hourCount"`
	EventLabel           *string           `json:"eventLabel,omitempty"`
	CreatedAt            string            `json:"createdAt"`
	UpdatedAt            string            `json:"updatedAt"`
}

// ToUseCaseRequest converts the HTTP request, parsing date and slots.
func (r *CreateReservationRequest) ToUseCaseRequest(requesterID int64, minAdvanceDays int) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

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

	return &createReservation.Request{
		RequesterID:    requesterID,
		RoomID:         r.RoomID,
		Date:           date,
		Slots:          slots,
		MinAdvanceDays: minAdvanceDays,
		EventLabel:     r.EventLabel,
	}, nil
}

// FromUseCaseResponse converts the usecase response into the HTTP body.
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	slots := make([]TimeSlotPayload, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = TimeSlotPayload{Start: s.Start.String(), End: s.End.String()}
	}

	return &ReservationResponse{
		ID:                   resp.ID,
		Code:                 resp.Code,
		RoomID:               resp.RoomID,
		RequesterID:          resp.RequesterID,
		BillingAssociationID: resp.BillingAssociationID,
		Date:                 resp.Date.Format(domain.DateFormat),
		Slots:                slots,
		Status:               resp.Status,
		TotalPrice:           resp.TotalPrice,
		DepositAmount:        resp.DepositAmount,
		DurationType:         resp.DurationType,
		UserType:             resp.UserType,
		HourCount:            resp.HourCount,
		EventLabel:           resp.EventLabel,
		CreatedAt:            resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            resp.UpdatedAt.Format(time.RFC3339),
	}
}
