package quote_reservation

import (
	"context"
	"errors"
	"fmt"

	roomRepo "github.com/mairie-chartrettes/SalleReservationService/internal/infra/storage/room"
	userRepo "github.com/mairie-chartrettes/SalleReservationService/internal/infra/storage/user"
	"github.com/mairie-chartrettes/SalleReservationService/internal/service/pricing"
)

// UseCase computes the price of a prospective reservation without
// persisting anything. The UI shows the quote before submission.
type UseCase struct {
	roomRepo      RoomRepository
	userRepo      UserRepository
	pricingEngine PricingEngine
	logger        Logger
}

// NewUseCase creates the usecase.
func NewUseCase(
	roomRepo RoomRepository,
	userRepo UserRepository,
	pricingEngine PricingEngine,
	logger Logger,
) *UseCase {
	return &UseCase{
		roomRepo:      roomRepo,
		userRepo:      userRepo,
		pricingEngine: pricingEngine,
		logger:        logger,
	}
}

// Execute returns the quote for the given room, requester and slots.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuoteReservation: requester=%d, room=%d, slots=%d", req.RequesterID, req.RoomID, len(req.Slots))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("QuoteReservation: validation failed: %v", err)
		return nil, err
	}

	requester, err := uc.userRepo.GetByID(ctx, req.RequesterID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		uc.logger.Error("QuoteReservation: failed to load requester id=%d: %v", req.RequesterID, err)
		return nil, fmt.Errorf("%w: failed to load requester: %v", ErrInternal, err)
	}

	room, err := uc.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("QuoteReservation: failed to load room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to load room: %v", ErrInternal, err)
	}

	price, err := uc.pricingEngine.Compute(room, requester, req.Slots)
	if err != nil {
		if errors.Is(err, pricing.ErrMissingTariff) {
			return nil, ErrMissingTariff
		}
		uc.logger.Error("QuoteReservation: pricing failed for room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: pricing failed: %v", ErrInternal, err)
	}

	return &Response{
		RoomID:        req.RoomID,
		TotalPrice:    price.TotalPrice,
		DepositAmount: price.DepositAmount,
		DurationType:  string(price.DurationType),
		UserType:      string(price.UserType),
		HourCount:     price.HourCount,
	}, nil
}

func validateRequest(req *Request) error {
	if req.RequesterID <= 0 {
		return fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}
	if len(req.Slots) == 0 {
		return fmt.Errorf("%w: at least one slot is required", ErrInvalidInput)
	}
	for i, slot := range req.Slots {
		if err := slot.Validate(); err != nil {
			return fmt.Errorf("%w: slot %d: %v", ErrInvalidInput, i, err)
		}
	}
	for i := 1; i < len(req.Slots); i++ {
		if req.Slots[i].Start != req.Slots[i-1].End {
			return fmt.Errorf("%w: slots must be contiguous and ordered", ErrInvalidInput)
		}
	}
	return nil
}
