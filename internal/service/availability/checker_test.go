package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mairie-chartrettes/SalleReservationService/internal/domain"
	"github.com/mairie-chartrettes/SalleReservationService/pkg/types"
)

type mockReservationRepo struct {
	getBlockingFunc func(ctx context.Context, roomID int64, date time.Time) ([]*domain.Reservation, error)
}

func (m *mockReservationRepo) GetBlockingByRoomAndDate(ctx context.Context, roomID int64, date time.Time) ([]*domain.Reservation, error) {
	if m.getBlockingFunc != nil {
		return m.getBlockingFunc(ctx, roomID, date)
	}
	return nil, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func slot(start, end string) domain.TimeSlot {
	return domain.TimeSlot{Start: types.TimeString(start), End: types.TimeString(end)}
}

func storedReservation(status domain.ReservationStatus, slots ...domain.TimeSlot) *domain.Reservation {
	return &domain.Reservation{
		ID:     42,
		RoomID: 1,
		Status: status,
		Slots:  slots,
	}
}

func TestHasConflict_OverlappingSlot(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	repo := &mockReservationRepo{
		getBlockingFunc: func(ctx context.Context, roomID int64, d time.Time) ([]*domain.Reservation, error) {
			assert.Equal(t, int64(1), roomID)
			assert.Equal(t, date, d)
			return []*domain.Reservation{
				storedReservation(domain.StatusApproved, slot("09:00", "10:00"), slot("10:00", "11:00")),
			}, nil
		},
	}
	checker := NewChecker(repo, nopLogger{})

	conflict, err := checker.HasConflict(context.Background(), 1, date, []domain.TimeSlot{slot("10:00", "11:00")})
	require.NoError(t, err)
	assert.True(t, conflict)
}

func TestHasConflict_AdjacentSlotsDoNotConflict(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	repo := &mockReservationRepo{
		getBlockingFunc: func(context.Context, int64, time.Time) ([]*domain.Reservation, error) {
			return []*domain.Reservation{
				storedReservation(domain.StatusApproved, slot("09:00", "10:00")),
			}, nil
		},
	}
	checker := NewChecker(repo, nopLogger{})

	// Half-open intervals: a slot starting exactly when another ends is free.
	conflict, err := checker.HasConflict(context.Background(), 1, date, []domain.TimeSlot{slot("10:00", "11:00")})
	require.NoError(t, err)
	assert.False(t, conflict)

	conflict, err = checker.HasConflict(context.Background(), 1, date, []domain.TimeSlot{slot("08:00", "09:00")})
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestHasConflict_PendingBlocksToo(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	repo := &mockReservationRepo{
		getBlockingFunc: func(context.Context, int64, time.Time) ([]*domain.Reservation, error) {
			return []*domain.Reservation{
				storedReservation(domain.StatusPending, slot("14:00", "15:00")),
			}, nil
		},
	}
	checker := NewChecker(repo, nopLogger{})

	conflict, err := checker.HasConflict(context.Background(), 1, date, []domain.TimeSlot{slot("14:00", "15:00")})
	require.NoError(t, err)
	assert.True(t, conflict)
}

func TestHasConflict_CancelledAndRejectedNeverBlock(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	repo := &mockReservationRepo{
		getBlockingFunc: func(context.Context, int64, time.Time) ([]*domain.Reservation, error) {
			// The repository filters these out, but the checker must not
			// count them even if they slip through.
			return []*domain.Reservation{
				storedReservation(domain.StatusCancelled, slot("14:00", "15:00")),
				storedReservation(domain.StatusRejected, slot("15:00", "16:00")),
			}, nil
		},
	}
	checker := NewChecker(repo, nopLogger{})

	conflict, err := checker.HasConflict(context.Background(), 1, date, []domain.TimeSlot{
		slot("14:00", "15:00"),
		slot("15:00", "16:00"),
	})
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestHasConflict_PartialOverlapOnOneSubSlot(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	repo := &mockReservationRepo{
		getBlockingFunc: func(context.Context, int64, time.Time) ([]*domain.Reservation, error) {
			return []*domain.Reservation{
				storedReservation(domain.StatusApproved, slot("11:00", "12:00")),
			}, nil
		},
	}
	checker := NewChecker(repo, nopLogger{})

	// Only the middle sub-slot collides, the request as a whole conflicts.
	conflict, err := checker.HasConflict(context.Background(), 1, date, []domain.TimeSlot{
		slot("10:00", "11:00"),
		slot("11:00", "12:00"),
		slot("12:00", "13:00"),
	})
	require.NoError(t, err)
	assert.True(t, conflict)
}

func TestHasConflict_EmptyRequestNeverConflicts(t *testing.T) {
	called := false
	repo := &mockReservationRepo{
		getBlockingFunc: func(context.Context, int64, time.Time) ([]*domain.Reservation, error) {
			called = true
			return nil, nil
		},
	}
	checker := NewChecker(repo, nopLogger{})

	conflict, err := checker.HasConflict(context.Background(), 1, time.Now(), nil)
	require.NoError(t, err)
	assert.False(t, conflict)
	assert.False(t, called, "empty request must not hit the store")
}

func TestHasConflict_StorageErrorIsDistinct(t *testing.T) {
	repo := &mockReservationRepo{
		getBlockingFunc: func(context.Context, int64, time.Time) ([]*domain.Reservation, error) {
			return nil, errors.New("connection refused")
		},
	}
	checker := NewChecker(repo, nopLogger{})

	_, err := checker.HasConflict(context.Background(), 1, time.Now(), []domain.TimeSlot{slot("10:00", "11:00")})
	assert.ErrorIs(t, err, ErrStorage)
}
