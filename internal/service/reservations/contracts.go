package reservations

import (
	"context"
	"time"

	"github.com/mairie-chartrettes/SalleReservationService/internal/domain"
	"github.com/mairie-chartrettes/SalleReservationService/internal/integrations/mailer"
)

// ReservationRepository is the storage interface for reservations.
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByRequesterID(ctx context.Context, requesterID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	GetByRoomWithFilter(ctx context.Context, filter domain.RoomReservationsFilter) ([]*domain.Reservation, error)
	GetBlockingByRoomAndDate(ctx context.Context, roomID int64, date time.Time) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// RoomRepository reads room records (used for notification content).
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// UserRepository reads caller and requester profiles.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.UserProfile, error)
}

// Notifier sends the decision email. Best-effort: failures are logged,
// never returned to the caller.
type Notifier interface {
	SendStatusUpdate(data mailer.StatusUpdateData) error
}

// TransactionManager runs the approval re-check and the status update
// in one serializable transaction.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging interface used by the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
