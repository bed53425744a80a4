package domain

import (
	"time"

	"github.com/mairie-chartrettes/SalleReservationService/pkg/types"
)

// ReservationStatus represents the lifecycle state of a reservation.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusApproved  ReservationStatus = "approved"
	StatusRejected  ReservationStatus = "rejected"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation represents a request to occupy a municipal room for a set
// of one-hour slots on a given day, together with the price computed at
// creation time.
type Reservation struct {
	ID                   int64
	Code                 string // public reference, UUID
	RoomID               int64
	RequesterID          int64
	BillingAssociationID int64
	Date                 time.Time // calendar day, time-of-day ignored
	Slots                []TimeSlot
	Status               ReservationStatus

	// Pricing snapshot, copied from the pricing engine at creation.
	TotalPrice    float64
	DepositAmount float64
	DurationType  DurationType
	UserType      UserType
	HourCount     int

	EventLabel *string // what the room is booked for, free text

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking reports whether the reservation occupies its slots for
// conflict purposes. Rejected and cancelled reservations never block.
func (r *Reservation) IsBlocking() bool {
	return r.Status == StatusPending || r.Status == StatusApproved
}

// CanBeCancelled reports whether the reservation can still be cancelled.
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusApproved
}

// CanTransitionTo reports whether the approval workflow may move the
// reservation to the given status. Only pending requests are decided.
func (r *Reservation) CanTransitionTo(next ReservationStatus) bool {
	if r.Status != StatusPending {
		return false
	}
	return next == StatusApproved || next == StatusRejected
}

// ConflictsWith reports whether any of the reservation's slots overlaps
// any of the requested slots.
func (r *Reservation) ConflictsWith(requested []TimeSlot) bool {
	for _, own := range r.Slots {
		for _, slot := range requested {
			if own.Overlaps(slot) {
				return true
			}
		}
	}
	return false
}

// RoomReservationsFilter narrows reservation lookups for a room.
type RoomReservationsFilter struct {
	RoomID          int64
	StartDate       *time.Time         // inclusive, nil = unbounded
	EndDate         *time.Time         // inclusive, nil = unbounded
	Status          *ReservationStatus // nil = all (subject to OnlyBlocking)
	OnlyBlocking    bool               // keep pending/approved only
}

// SlotsCoverInterval reports whether the ordered slot sequence covers the
// continuous interval [start, end). Used by tests and sanity checks.
func SlotsCoverInterval(slots []TimeSlot, start, end types.TimeString) bool {
	if len(slots) == 0 {
		return false
	}
	if slots[0].Start != start || slots[len(slots)-1].End != end {
		return false
	}
	for i := 1; i < len(slots); i++ {
		if slots[i].Start != slots[i-1].End {
			return false
		}
	}
	return true
}
