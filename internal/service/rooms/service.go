package rooms

import (
	"context"
	"errors"
	"fmt"

	roomRepo "github.com/mairie-chartrettes/SalleReservationService/internal/infra/storage/room"
	"github.com/mairie-chartrettes/SalleReservationService/internal/service/rooms/models"
)

// Service exposes read access to the room catalogue. Rooms are managed
// by the admin UI and only read here.
type Service struct {
	roomRepo RoomRepository
	logger   Logger
}

// NewService creates a rooms service.
func NewService(roomRepo RoomRepository, logger Logger) *Service {
	return &Service{roomRepo: roomRepo, logger: logger}
}

// GetByID fetches a room with its tariff configuration.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.RoomResponse, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("GetByID: room id=%d not found", id)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("GetByID: repository error for room id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRoom(room), nil
}

// List fetches all rooms.
func (s *Service) List(ctx context.Context) (*models.RoomListResponse, error) {
	rooms, err := s.roomRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d rooms", len(rooms))
	return models.FromDomainRoomList(rooms), nil
}
