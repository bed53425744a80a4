package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/mairie-chartrettes/SalleReservationService/internal/domain"
	roomRepo "github.com/mairie-chartrettes/SalleReservationService/internal/infra/storage/room"
)

// UseCase lists the one-hour slot grid of a room for one day, marking
// each slot free or taken. Backs the booking calendar of the UI.
type UseCase struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the usecase.
func NewUseCase(
	reservationRepo ReservationRepository,
	roomRepo RoomRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute returns the slot grid between opening and closing time.
// Past dates yield an empty grid rather than an error: the calendar UI
// pages through days freely.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: room=%d, date=%s", req.RoomID, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	if _, err := uc.roomRepo.GetByID(ctx, req.RoomID); err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("GetAvailableSlots: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		return &Response{RoomID: req.RoomID, Date: req.Date, Slots: []Slot{}}, nil
	}

	grid, err := generateDayGrid()
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slot grid: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slot grid: %v", ErrInternal, err)
	}

	reservations, err := uc.reservationRepo.GetBlockingByRoomAndDate(ctx, req.RoomID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	slots := markTakenSlots(grid, reservations)

	uc.logger.Info("GetAvailableSlots: %d slots for room=%d date=%s",
		len(slots), req.RoomID, req.Date.Format(domain.DateFormat))

	return &Response{
		RoomID: req.RoomID,
		Date:   req.Date,
		Slots:  slots,
	}, nil
}
