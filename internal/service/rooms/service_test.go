package rooms

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mairie-chartrettes/SalleReservationService/internal/domain"
	roomRepo "github.com/mairie-chartrettes/SalleReservationService/internal/infra/storage/room"
)

type mockRoomRepo struct {
	getByIDFunc func(ctx context.Context, id int64) (*domain.Room, error)
	listFunc    func(ctx context.Context) ([]*domain.Room, error)
}

func (m *mockRoomRepo) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockRoomRepo) List(ctx context.Context) ([]*domain.Room, error) {
	return m.listFunc(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestGetByID_MapsTariffs(t *testing.T) {
	repo := &mockRoomRepo{
		getByIDFunc: func(context.Context, int64) (*domain.Room, error) {
			return &domain.Room{
				ID:             1,
				Name:           "Salle polyvalente",
				Capacity:       120,
				IsPaid:         true,
				Deposit:        300,
				PricingFullDay: &domain.TariffTable{Chartrettois: 150, Association: 100, Exterieur: 400},
			}, nil
		},
	}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Salle polyvalente", resp.Name)
	assert.Equal(t, 300.0, resp.Deposit)
	require.NotNil(t, resp.PricingFullDay)
	assert.Equal(t, 400.0, resp.PricingFullDay.Exterieur)
	assert.Nil(t, resp.PricingHourly, "unset tier stays nil")
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &mockRoomRepo{
		getByIDFunc: func(context.Context, int64) (*domain.Room, error) {
			return nil, roomRepo.ErrRoomNotFound
		},
	}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestList(t *testing.T) {
	repo := &mockRoomRepo{
		listFunc: func(context.Context) ([]*domain.Room, error) {
			return []*domain.Room{{ID: 1, Name: "Salle A"}, {ID: 2, Name: "Salle B"}}, nil
		},
	}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, resp.Rooms, 2)
}

func TestList_RepositoryError(t *testing.T) {
	repo := &mockRoomRepo{
		listFunc: func(context.Context) ([]*domain.Room, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewService(repo, nopLogger{})

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
