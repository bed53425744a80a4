package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/mairie-chartrettes/SalleReservationService/internal/domain"
)

// Checker answers whether a requested set of slots collides with the
// reservations already stored for a room on a given day.
type Checker struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewChecker creates an availability checker.
func NewChecker(reservationRepo ReservationRepository, logger Logger) *Checker {
	return &Checker{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// HasConflict reports whether any requested slot overlaps a pending or
// approved reservation for the room on the same calendar day.
//
// An empty request never conflicts (callers reject empty requests
// upstream). The whole request is treated atomically: overlap on a
// single sub-slot is a conflict for the entire request.
//
// When called inside a serializable transaction the underlying day view
// is locked, which closes the check-then-insert race for concurrent
// requests on the same room and day.
func (c *Checker) HasConflict(ctx context.Context, roomID int64, date time.Time, requested []domain.TimeSlot) (bool, error) {
	if len(requested) == 0 {
		return false, nil
	}

	existing, err := c.reservationRepo.GetBlockingByRoomAndDate(ctx, roomID, date)
	if err != nil {
		c.logger.Error("HasConflict: failed to load reservations for room=%d date=%s: %v",
			roomID, date.Format(domain.DateFormat), err)
		return false, fmt.Errorf("%w: HasConflict - load reservations: %v", ErrStorage, err)
	}

	for _, reservation := range existing {
		// Stored rows are already filtered to blocking statuses, the
		// guard protects against future repository changes.
		if !reservation.IsBlocking() {
			continue
		}
		if reservation.ConflictsWith(requested) {
			c.logger.Info("HasConflict: room=%d date=%s conflicts with reservation id=%d",
				roomID, date.Format(domain.DateFormat), reservation.ID)
			return true, nil
		}
	}

	return false, nil
}
