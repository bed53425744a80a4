package quote_reservation

import "github.com/mairie-chartrettes/SalleReservationService/internal/domain"

// Request is the quote input: who books which room for which slots.
type Request struct {
	RequesterID int64
	RoomID      int64
	Slots       []domain.TimeSlot
}

// Response is the computed quote.
type Response struct {
	RoomID        int64
	TotalPrice    float64
	DepositAmount float64
	DurationType  string
	UserType      string
	HourCount     int
}
