package quote_reservation

import (
	"context"

	"github.com/mairie-chartrettes/SalleReservationService/internal/domain"
)

// RoomRepository reads room tariff configuration.
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// UserRepository reads requester profiles.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.UserProfile, error)
}

// PricingEngine computes the price of a reservation.
type PricingEngine interface {
	Compute(room *domain.Room, user *domain.UserProfile, slots []domain.TimeSlot) (*domain.PricingResult, error)
}

// Logger is the logging interface used by the usecase.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
