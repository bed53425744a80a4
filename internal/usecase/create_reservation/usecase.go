package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mairie-chartrettes/SalleReservationService/internal/domain"
	roomRepo "github.com/mairie-chartrettes/SalleReservationService/internal/infra/storage/room"
	userRepo "github.com/mairie-chartrettes/SalleReservationService/internal/infra/storage/user"
	"github.com/mairie-chartrettes/SalleReservationService/internal/integrations/mailer"
	"github.com/mairie-chartrettes/SalleReservationService/internal/service/pricing"
)

// UseCase creates reservation requests: advance-notice validation,
// billing-association resolution, conflict check, pricing, persistence
// and confirmation email.
type UseCase struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	userRepo        UserRepository
	availability    AvailabilityChecker
	pricingEngine   PricingEngine
	notifier        Notifier
	txManager       TransactionManager
	wellKnown       domain.WellKnownAssociations
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the usecase. wellKnown carries the provisioned IDs
// of the town hall and individuals billing associations.
func NewUseCase(
	reservationRepo ReservationRepository,
	roomRepo RoomRepository,
	userRepo UserRepository,
	availability AvailabilityChecker,
	pricingEngine PricingEngine,
	notifier Notifier,
	txManager TransactionManager,
	wellKnown domain.WellKnownAssociations,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		userRepo:        userRepo,
		availability:    availability,
		pricingEngine:   pricingEngine,
		notifier:        notifier,
		txManager:       txManager,
		wellKnown:       wellKnown,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute handles one reservation request.
// The conflict check and the insert run inside a single serializable
// transaction with the room's day view locked, so two concurrent
// requests for the same room and day cannot both pass the check.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: requester=%d, room=%d, date=%s, slots=%d, minAdvanceDays=%d",
		req.RequesterID, req.RoomID, req.Date.Format(domain.DateFormat), len(req.Slots), req.MinAdvanceDays)

	// 1. Structural validation
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Advance-notice rules, at day precision
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now, req.MinAdvanceDays); err != nil {
		uc.logger.Warn("CreateReservation: date validation failed: %v", err)
		return nil, err
	}

	// 3. Load the requester
	requester, err := uc.userRepo.GetByID(ctx, req.RequesterID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateReservation: requester id=%d not found", req.RequesterID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateReservation: failed to load requester id=%d: %v", req.RequesterID, err)
		return nil, fmt.Errorf("%w: failed to load requester: %v", ErrInternal, err)
	}

	// 4. Resolve the billing association from the requester role
	billingAssociationID, err := uc.resolveBillingAssociation(requester)
	if err != nil {
		uc.logger.Warn("CreateReservation: billing resolution failed for requester id=%d: %v", req.RequesterID, err)
		return nil, err
	}

	// 5. Load the room and compute the price
	room, err := uc.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("CreateReservation: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CreateReservation: failed to load room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to load room: %v", ErrInternal, err)
	}

	price, err := uc.pricingEngine.Compute(room, requester, req.Slots)
	if err != nil {
		if errors.Is(err, pricing.ErrMissingTariff) {
			uc.logger.Warn("CreateReservation: room id=%d has no tariff for %d slots", req.RoomID, len(req.Slots))
			return nil, ErrMissingTariff
		}
		uc.logger.Error("CreateReservation: pricing failed for room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: pricing failed: %v", ErrInternal, err)
	}

	// 6. Admin bookings are self-approved, everything else awaits review
	status := domain.StatusPending
	if requester.IsAdmin() {
		status = domain.StatusApproved
	}

	var result *domain.Reservation

	// 7. Conflict check + insert in one serializable transaction
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		conflict, err := uc.availability.HasConflict(txCtx, req.RoomID, req.Date, req.Slots)
		if err != nil {
			uc.logger.Error("CreateReservation: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}
		if conflict {
			uc.logger.Warn("CreateReservation: slot conflict for room=%d date=%s",
				req.RoomID, req.Date.Format(domain.DateFormat))
			return ErrSlotConflict
		}

		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			Code:                 uuid.NewString(),
			RoomID:               req.RoomID,
			RequesterID:          req.RequesterID,
			BillingAssociationID: billingAssociationID,
			Date:                 req.Date,
			Slots:                req.Slots,
			Status:               status,
			TotalPrice:           price.TotalPrice,
			DepositAmount:        price.DepositAmount,
			DurationType:         price.DurationType,
			UserType:             price.UserType,
			HourCount:            price.HourCount,
			EventLabel:           req.EventLabel,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to persist reservation: %v", err)
			return fmt.Errorf("%w: failed to persist reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: created reservation id=%d code=%s status=%s price=%.2f",
		result.ID, result.Code, result.Status, result.TotalPrice)

	// 8. Confirmation email, fire-and-forget: a notification failure
	// must never roll back the created reservation.
	go uc.notify(requester, room, result)

	return toResponse(result), nil
}

// resolveBillingAssociation maps the requester role onto the billing
// association: town hall for admins, the shared individuals record for
// private persons, the requester's own association otherwise.
func (uc *UseCase) resolveBillingAssociation(requester *domain.UserProfile) (int64, error) {
	switch requester.Role {
	case domain.RoleAdmin:
		if uc.wellKnown.TownHallID == 0 {
			return 0, ErrConfiguration
		}
		return uc.wellKnown.TownHallID, nil
	case domain.RoleParticulier:
		if uc.wellKnown.IndividualsID == 0 {
			return 0, ErrConfiguration
		}
		return uc.wellKnown.IndividualsID, nil
	default:
		if requester.AssociationID == nil {
			return 0, ErrMissingAssociation
		}
		return *requester.AssociationID, nil
	}
}

func (uc *UseCase) notify(requester *domain.UserProfile, room *domain.Room, reservation *domain.Reservation) {
	if requester.Email == "" {
		uc.logger.Warn("CreateReservation: requester id=%d has no email, skipping confirmation", requester.ID)
		return
	}

	err := uc.notifier.SendReservationConfirmation(mailer.ConfirmationData{
		RecipientEmail: requester.Email,
		RecipientName:  requester.FullName(),
		RoomName:       room.Name,
		Date:           reservation.Date,
		Slots:          reservation.Slots,
		Status:         reservation.Status,
		Code:           reservation.Code,
		TotalPrice:     reservation.TotalPrice,
		DepositAmount:  reservation.DepositAmount,
	})
	if err != nil {
		uc.logger.Error("CreateReservation: confirmation email failed for reservation id=%d: %v",
			reservation.ID, err)
	}
}

func toResponse(r *domain.Reservation) *Response {
	return &Response{
		ID:                   r.ID,
		Code:                 r.Code,
		RoomID:               r.RoomID,
		RequesterID:          r.RequesterID,
		BillingAssociationID: r.BillingAssociationID,
		Date:                 r.Date,
		Slots:                r.Slots,
		Status:               string(r.Status),
		TotalPrice:           r.TotalPrice,
		DepositAmount:        r.DepositAmount,
		DurationType:         string(r.DurationType),
		UserType:             string(r.UserType),
		HourCount:            r.HourCount,
		EventLabel:           r.EventLabel,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}
