package availability

import (
	"context"
	"time"

	"github.com/mairie-chartrettes/SalleReservationService/internal/domain"
)

// ReservationRepository is the slice of the reservation store the
// checker needs: the blocking reservations of one room for one day.
type ReservationRepository interface {
	GetBlockingByRoomAndDate(ctx context.Context, roomID int64, date time.Time) ([]*domain.Reservation, error)
}

// Logger is the logging interface used by the checker.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
