package rooms

import (
	"context"

	"github.com/mairie-chartrettes/SalleReservationService/internal/domain"
)

// RoomRepository is the storage interface for rooms.
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context) ([]*domain.Room, error)
}

// Logger is the logging interface used by the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
