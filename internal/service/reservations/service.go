package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/mairie-chartrettes/SalleReservationService/internal/domain"
	reservationRepo "github.com/mairie-chartrettes/SalleReservationService/internal/infra/storage/reservation"
	roomRepo "github.com/mairie-chartrettes/SalleReservationService/internal/infra/storage/room"
	userRepo "github.com/mairie-chartrettes/SalleReservationService/internal/infra/storage/user"
	"github.com/mairie-chartrettes/SalleReservationService/internal/integrations/mailer"
	"github.com/mairie-chartrettes/SalleReservationService/internal/service/reservations/models"
)

// Service handles reads, cancellation and the approval workflow of
// reservation requests.
type Service struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	userRepo        UserRepository
	notifier        Notifier
	txManager       TransactionManager
	logger          Logger
}

// NewService creates a reservations service.
func NewService(
	reservationRepo ReservationRepository,
	roomRepo RoomRepository,
	userRepo UserRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		userRepo:        userRepo,
		notifier:        notifier,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID fetches a reservation.
// A requester can only see their own reservations; town hall staff can
// see all of them.
func (s *Service) GetByID(ctx context.Context, id int64, callerID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, callerID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkReadAccess(ctx, reservation, callerID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", callerID, id)
		return nil, err
	}

	return models.FromDomainReservation(reservation), nil
}

// GetUserReservations fetches a user's reservation history, optionally
// filtered by status. Callers can only list their own history unless
// they are town hall staff.
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	if req.CallerID != req.UserID {
		if err := s.checkAdminAccess(ctx, req.CallerID); err != nil {
			s.logger.Warn("GetUserReservations: access denied for user=%d to history of user=%d", req.CallerID, req.UserID)
			return nil, err
		}
	}

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByRequesterID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// GetRoomReservations fetches the reservations of a room with optional
// date range and status filters. Town hall staff only.
func (s *Service) GetRoomReservations(ctx context.Context, req *models.GetRoomReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetRoomReservations: fetching reservations for room=%d, user=%d", req.RoomID, req.CallerID)

	if err := s.checkAdminAccess(ctx, req.CallerID); err != nil {
		s.logger.Warn("GetRoomReservations: access denied for user=%d to room=%d", req.CallerID, req.RoomID)
		return nil, err
	}

	if _, err := s.roomRepo.GetByID(ctx, req.RoomID); err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("GetRoomReservations: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("GetRoomReservations: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: GetRoomReservations - failed to get room: %v", ErrInternal, err)
	}

	filter := domain.RoomReservationsFilter{
		RoomID:    req.RoomID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetRoomReservations: invalid status=%s for room=%d", *req.Status, req.RoomID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	reservations, err := s.reservationRepo.GetByRoomWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetRoomReservations: repository error for room=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: GetRoomReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetRoomReservations: fetched %d reservations for room=%d", len(reservations), req.RoomID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel cancels a reservation, recording the reason.
// A requester can cancel their own pending or approved reservation;
// town hall staff can cancel any.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", id, req.CallerID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if reservation.RequesterID != req.CallerID {
		if err := s.checkAdminAccess(ctx, req.CallerID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel reservation id=%d", req.CallerID, id)
			return ErrAccessDenied
		}
	}

	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", id, reservation.Status)
		return ErrCannotCancel
	}

	if err := s.reservationRepo.Cancel(ctx, id, req.Reason); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", id)
	return nil
}

// UpdateStatus decides a pending reservation. Town hall staff only.
// Pending requests can move to approved or rejected; every other
// transition is refused. Approval re-checks the slots against the other
// blocking reservations of the day inside a serializable transaction,
// then notifies the requester by email.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating reservation id=%d to status=%s by user=%d", id, req.Status, req.CallerID)

	if err := s.checkAdminAccess(ctx, req.CallerID); err != nil {
		s.logger.Warn("UpdateStatus: access denied for user=%d on reservation id=%d", req.CallerID, id)
		return err
	}

	newStatus, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%d", req.Status, id)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	var decided *domain.Reservation
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		reservation, err := s.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		if !reservation.CanTransitionTo(newStatus) {
			s.logger.Warn("UpdateStatus: transition %s -> %s refused for reservation id=%d",
				reservation.Status, newStatus, id)
			return ErrInvalidTransition
		}

		if newStatus == domain.StatusApproved {
			if err := s.recheckAvailability(txCtx, reservation); err != nil {
				return err
			}
		}

		if err := s.reservationRepo.UpdateStatus(txCtx, id, newStatus); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		reservation.Status = newStatus
		decided = reservation
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrReservationNotFound) ||
			errors.Is(err, ErrInvalidTransition) ||
			errors.Is(err, ErrSlotConflict) {
			return err
		}
		s.logger.Error("UpdateStatus: transaction failed for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - transaction failed: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: reservation id=%d moved to status=%s", id, newStatus)

	go s.notifyDecision(decided)

	return nil
}

// recheckAvailability guards the approval against reservations created
// after the original conflict check. The decided reservation itself is
// skipped.
func (s *Service) recheckAvailability(ctx context.Context, reservation *domain.Reservation) error {
	blocking, err := s.reservationRepo.GetBlockingByRoomAndDate(ctx, reservation.RoomID, reservation.Date)
	if err != nil {
		return fmt.Errorf("%w: recheckAvailability - repository error: %v", ErrInternal, err)
	}

	for _, other := range blocking {
		if other.ID == reservation.ID {
			continue
		}
		if other.ConflictsWith(reservation.Slots) {
			s.logger.Warn("recheckAvailability: reservation id=%d conflicts with id=%d", reservation.ID, other.ID)
			return ErrSlotConflict
		}
	}

	return nil
}

// notifyDecision emails the requester about the decision. Runs in its
// own goroutine; failures are only logged.
func (s *Service) notifyDecision(reservation *domain.Reservation) {
	ctx := context.Background()

	requester, err := s.userRepo.GetByID(ctx, reservation.RequesterID)
	if err != nil {
		s.logger.Error("notifyDecision: failed to get requester id=%d: %v", reservation.RequesterID, err)
		return
	}

	room, err := s.roomRepo.GetByID(ctx, reservation.RoomID)
	if err != nil {
		s.logger.Error("notifyDecision: failed to get room id=%d: %v", reservation.RoomID, err)
		return
	}

	err = s.notifier.SendStatusUpdate(mailer.StatusUpdateData{
		RecipientEmail: requester.Email,
		RecipientName:  requester.FullName(),
		RoomName:       room.Name,
		Date:           reservation.Date,
		Status:         reservation.Status,
		Code:           reservation.Code,
	})
	if err != nil {
		s.logger.Error("notifyDecision: failed to send email for reservation id=%d: %v", reservation.ID, err)
		return
	}

	s.logger.Info("notifyDecision: decision email sent for reservation id=%d", reservation.ID)
}

func (s *Service) checkReadAccess(ctx context.Context, reservation *domain.Reservation, callerID int64) error {
	if reservation.RequesterID == callerID {
		return nil
	}
	if err := s.checkAdminAccess(ctx, callerID); err != nil {
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) checkAdminAccess(ctx context.Context, callerID int64) error {
	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%w: checkAdminAccess - failed to get user: %v", ErrInternal, err)
	}
	if !caller.IsAdmin() {
		return ErrAccessDenied
	}
	return nil
}
