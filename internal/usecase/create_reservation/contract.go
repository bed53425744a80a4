package create_reservation

import (
	"context"
	"time"

	"github.com/mairie-chartrettes/SalleReservationService/internal/domain"
	"github.com/mairie-chartrettes/SalleReservationService/internal/integrations/mailer"
)

// ReservationRepository is the write side of the reservation store.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
}

// RoomRepository reads room tariff configuration.
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// UserRepository reads requester profiles.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.UserProfile, error)
}

// AvailabilityChecker answers whether requested slots collide with
// stored reservations.
type AvailabilityChecker interface {
	HasConflict(ctx context.Context, roomID int64, date time.Time, slots []domain.TimeSlot) (bool, error)
}

// PricingEngine computes the price of a reservation.
type PricingEngine interface {
	Compute(room *domain.Room, user *domain.UserProfile, slots []domain.TimeSlot) (*domain.PricingResult, error)
}

// Notifier sends the confirmation email. Best-effort: failures are
// logged, never returned to the requester.
type Notifier interface {
	SendReservationConfirmation(data mailer.ConfirmationData) error
}

// TransactionManager runs the conflict check and the insert in one
// serializable transaction.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current time (swapped in tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface used by the usecase.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production TimeProvider.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
