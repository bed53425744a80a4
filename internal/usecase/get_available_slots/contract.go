package get_available_slots

import (
	"context"
	"time"

	"github.com/mairie-chartrettes/SalleReservationService/internal/domain"
)

// ReservationRepository reads the blocking reservations of one room day.
type ReservationRepository interface {
	GetBlockingByRoomAndDate(ctx context.Context, roomID int64, date time.Time) ([]*domain.Reservation, error)
}

// RoomRepository checks room existence.
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
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
