package models

import (
	"fmt"
	"time"

	"github.com/mairie-chartrettes/SalleReservationService/internal/domain"
)

// Request models

// CancelReservationRequest cancels a reservation.
type CancelReservationRequest struct {
	CallerID int64  `json:"-"`
	Reason   string `json:"reason"`
}

// UpdateStatusRequest decides a pending reservation.
type UpdateStatusRequest struct {
	CallerID int64  `json:"-"`
	Status   string `json:"status"`
}

// GetUserReservationsRequest filters a user's history.
type GetUserReservationsRequest struct {
	UserID   int64
	CallerID int64
	Status   *string
}

// GetRoomReservationsRequest filters a room's reservations.
type GetRoomReservationsRequest struct {
	RoomID    int64
	CallerID  int64
	StartDate *time.Time
	EndDate   *time.Time
	Status    *string
}

// Response models

// TimeSlotView is one reserved slot.
type TimeSlotView struct {
	Start string `json:"start"` // "09:00"
	End   string `json:"end"`   // "10:00"
}

// ReservationResponse is the reservation as served over HTTP.
type ReservationResponse struct {
	ID                   int64          `json:"id"`
	Code                 string         `json:"code"`
	RoomID               int64          `json:"roomId"`
	RequesterID          int64          `json:"requesterId"`
	BillingAssociationID int64          `json:"billingAssociationId"`
	Date                 string         `json:"date"` // "2025-07-05"
	Slots                []TimeSlotView `json:"slots"`
	Status               string         `json:"status"`
	TotalPrice           float64        `json:"totalPrice"`
	DepositAmount        float64        `json:"depositAmount"`
	DurationType         string         `json:"durationType"`
	UserType             string         `json:"userType"`
	HourCount            int            `json:"hourCount"`
	EventLabel           *string        `json:"eventLabel,omitempty"`
	CancellationReason   *string        `json:"cancellationReason,omitempty"`
	CancelledAt          *string        `json:"cancelledAt,omitempty"`
	CreatedAt            string         `json:"createdAt"`
	UpdatedAt            string         `json:"updatedAt"`
}

// ReservationListResponse wraps a list of reservations.
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
}

// FromDomainReservation converts a domain reservation.
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	slots := make([]TimeSlotView, len(r.Slots))
	for i, s := range r.Slots {
		slots[i] = TimeSlotView{Start: s.Start.String(), End: s.End.String()}
	}

	var cancelledAt *string
	if r.CancelledAt != nil {
		formatted := r.CancelledAt.Format(time.RFC3339)
		cancelledAt = &formatted
	}

	return &ReservationResponse{
		ID:                   r.ID,
		Code:                 r.Code,
		RoomID:               r.RoomID,
		RequesterID:          r.RequesterID,
		BillingAssociationID: r.BillingAssociationID,
		Date:                 r.Date.Format(domain.DateFormat),
		Slots:                slots,
		Status:               string(r.Status),
		TotalPrice:           r.TotalPrice,
		DepositAmount:        r.DepositAmount,
		DurationType:         string(r.DurationType),
		UserType:             string(r.UserType),
		HourCount:            r.HourCount,
		EventLabel:           r.EventLabel,
		CancellationReason:   r.CancellationReason,
		CancelledAt:          cancelledAt,
		CreatedAt:            r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            r.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainReservationList converts a list of domain reservations.
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	out := make([]*ReservationResponse, len(reservations))
	for i, r := range reservations {
		out[i] = FromDomainReservation(r)
	}
	return &ReservationListResponse{Reservations: out}
}

// ToDomainStatus validates and converts a status string.
func ToDomainStatus(s string) (domain.ReservationStatus, error) {
	switch domain.ReservationStatus(s) {
	case domain.StatusPending, domain.StatusApproved, domain.StatusRejected, domain.StatusCancelled:
		return domain.ReservationStatus(s), nil
	default:
		return "", fmt.Errorf("unknown reservation status %q", s)
	}
}
