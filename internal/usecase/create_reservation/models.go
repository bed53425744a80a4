package create_reservation

import (
	"time"

	"github.com/mairie-chartrettes/SalleReservationService/internal/domain"
)

// Request is the usecase input.
// MinAdvanceDays comes from configuration and is selected by the entry
// point: the standard submission flow and the quick-booking flow use
// different windows, so the handler supplies the value instead of the
// usecase hardcoding one.
type Request struct {
	RequesterID    int64
	RoomID         int64
	Date           time.Time // calendar day
	Slots          []domain.TimeSlot
	MinAdvanceDays int
	EventLabel     *string
}

// Response is the created reservation as returned to the API layer.
type Response struct {
	ID                   int64
	Code                 string
	RoomID               int64
	RequesterID          int64
	BillingAssociationID int64
	Date                 time.Time
	Slots                []domain.TimeSlot
	Status               string

	TotalPrice    float64
	DepositAmount float64
	DurationType  string
	UserType      string
	HourCount     int

	EventLabel *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
