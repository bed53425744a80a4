package mailer

import (
	"time"

	"github.com/mairie-chartrettes/SalleReservationService/internal/domain"
)

// ConfirmationData carries everything the confirmation template needs.
type ConfirmationData struct {
	RecipientEmail string
	RecipientName  string
	RoomName       string
	Date           time.Time
	Slots          []domain.TimeSlot
	Status         domain.ReservationStatus
	Code           string
	TotalPrice     float64
	DepositAmount  float64
}

// StatusUpdateData carries the approval/rejection template inputs.
type StatusUpdateData struct {
	RecipientEmail string
	RecipientName  string
	RoomName       string
	Date           time.Time
	Status         domain.ReservationStatus
	Code           string
}
