package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mairie-chartrettes/SalleReservationService/internal/domain"
	reservationRepo "github.com/mairie-chartrettes/SalleReservationService/internal/infra/storage/reservation"
	"github.com/mairie-chartrettes/SalleReservationService/internal/integrations/mailer"
	"github.com/mairie-chartrettes/SalleReservationService/internal/service/reservations/models"
	"github.com/mairie-chartrettes/SalleReservationService/pkg/ptr"
	"github.com/mairie-chartrettes/SalleReservationService/pkg/types"
)

// --- mocks ---

type mockReservationRepo struct {
	getByIDFunc       func(ctx context.Context, id int64) (*domain.Reservation, error)
	getByRequester    func(ctx context.Context, requesterID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	getByRoomFunc     func(ctx context.Context, filter domain.RoomReservationsFilter) ([]*domain.Reservation, error)
	getBlockingFunc   func(ctx context.Context, roomID int64, date time.Time) ([]*domain.Reservation, error)
	updateStatusFunc  func(ctx context.Context, id int64, status domain.ReservationStatus) error
	cancelFunc        func(ctx context.Context, id int64, reason string) error
	updateStatusCalls int
	cancelCalls       int
}

func (m *mockReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return pendingReservation(), nil
}

func (m *mockReservationRepo) GetByRequesterID(ctx context.Context, requesterID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	if m.getByRequester != nil {
		return m.getByRequester(ctx, requesterID, status)
	}
	return []*domain.Reservation{pendingReservation()}, nil
}

func (m *mockReservationRepo) GetByRoomWithFilter(ctx context.Context, filter domain.RoomReservationsFilter) ([]*domain.Reservation, error) {
	if m.getByRoomFunc != nil {
		return m.getByRoomFunc(ctx, filter)
	}
	return []*domain.Reservation{pendingReservation()}, nil
}

func (m *mockReservationRepo) GetBlockingByRoomAndDate(ctx context.Context, roomID int64, date time.Time) ([]*domain.Reservation, error) {
	if m.getBlockingFunc != nil {
		return m.getBlockingFunc(ctx, roomID, date)
	}
	return nil, nil
}

func (m *mockReservationRepo) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	m.updateStatusCalls++
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockReservationRepo) Cancel(ctx context.Context, id int64, reason string) error {
	m.cancelCalls++
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, id, reason)
	}
	return nil
}

type mockRoomRepo struct {
	getByIDFunc func(ctx context.Context, id int64) (*domain.Room, error)
}

func (m *mockRoomRepo) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &domain.Room{ID: 1, Name: "Salle des fêtes"}, nil
}

type mockUserRepo struct {
	getByIDFunc func(ctx context.Context, id int64) (*domain.UserProfile, error)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.UserProfile, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return userByID(id), nil
}

type mockNotifier struct {
	sent chan mailer.StatusUpdateData
	err  error
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{sent: make(chan mailer.StatusUpdateData, 1)}
}

func (m *mockNotifier) SendStatusUpdate(data mailer.StatusUpdateData) error {
	m.sent <- data
	return m.err
}

type passthroughTxManager struct {
	calls int
}

func (m *passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- fixtures ---

const (
	requesterID = int64(5)
	adminID     = int64(9)
	strangerID  = int64(42)
)

// userByID returns the admin profile for adminID and a plain requester
// otherwise.
func userByID(id int64) *domain.UserProfile {
	if id == adminID {
		return &domain.UserProfile{ID: adminID, Email: "mairie@chartrettes.fr", LastName: "Mairie", Role: domain.RoleAdmin}
	}
	return &domain.UserProfile{
		ID:            id,
		Email:         "president@assoc.fr",
		FirstName:     "Jeanne",
		LastName:      "Moreau",
		Role:          domain.RoleUser,
		AssociationID: ptr.Ptr(int64(7)),
	}
}

func slot(start, end string) domain.TimeSlot {
	return domain.TimeSlot{Start: types.TimeString(start), End: types.TimeString(end)}
}

func pendingReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:                   100,
		Code:                 "a3a9f1f0-0000-0000-0000-000000000001",
		RoomID:               1,
		RequesterID:          requesterID,
		BillingAssociationID: 7,
		Date:                 time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC),
		Slots:                []domain.TimeSlot{slot("09:00", "10:00"), slot("10:00", "11:00")},
		Status:               domain.StatusPending,
		TotalPrice:           20,
		DepositAmount:        300,
		DurationType:         domain.DurationHourly,
		UserType:             domain.UserTypeAssociation,
		HourCount:            2,
	}
}

type fixture struct {
	svc          *Service
	reservations *mockReservationRepo
	rooms        *mockRoomRepo
	users        *mockUserRepo
	notifier     *mockNotifier
	txManager    *passthroughTxManager
}

func newFixture() *fixture {
	f := &fixture{
		reservations: &mockReservationRepo{},
		rooms:        &mockRoomRepo{},
		users:        &mockUserRepo{},
		notifier:     newMockNotifier(),
		txManager:    &passthroughTxManager{},
	}
	f.svc = NewService(f.reservations, f.rooms, f.users, f.notifier, f.txManager, nopLogger{})
	return f
}

// --- GetByID ---

func TestGetByID_Requester(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.GetByID(context.Background(), 100, requesterID)
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, []models.TimeSlotView{{Start: "09:00", End: "10:00"}, {Start: "10:00", End: "11:00"}}, resp.Slots)
}

func TestGetByID_AdminSeesAnyReservation(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetByID(context.Background(), 100, adminID)
	assert.NoError(t, err)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetByID(context.Background(), 100, strangerID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture()
	f.reservations.getByIDFunc = func(context.Context, int64) (*domain.Reservation, error) {
		return nil, reservationRepo.ErrReservationNotFound
	}

	_, err := f.svc.GetByID(context.Background(), 999, requesterID)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

// --- GetUserReservations ---

func TestGetUserReservations_OwnHistory(t *testing.T) {
	f := newFixture()

	var gotStatus *domain.ReservationStatus
	f.reservations.getByRequester = func(_ context.Context, _ int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
		gotStatus = status
		return []*domain.Reservation{pendingReservation()}, nil
	}

	resp, err := f.svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{
		UserID:   requesterID,
		CallerID: requesterID,
		Status:   ptr.Ptr("pending"),
	})
	require.NoError(t, err)

	assert.Len(t, resp.Reservations, 1)
	require.NotNil(t, gotStatus)
	assert.Equal(t, domain.StatusPending, *gotStatus)
}

func TestGetUserReservations_OtherUserRequiresAdmin(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{
		UserID:   requesterID,
		CallerID: strangerID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{
		UserID:   requesterID,
		CallerID: adminID,
	})
	assert.NoError(t, err)
}

func TestGetUserReservations_InvalidStatus(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{
		UserID:   requesterID,
		CallerID: requesterID,
		Status:   ptr.Ptr("confirmed"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// --- GetRoomReservations ---

func TestGetRoomReservations_AdminOnly(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetRoomReservations(context.Background(), &models.GetRoomReservationsRequest{
		RoomID:   1,
		CallerID: requesterID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetRoomReservations_FilterPassedThrough(t *testing.T) {
	f := newFixture()

	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)

	var gotFilter domain.RoomReservationsFilter
	f.reservations.getByRoomFunc = func(_ context.Context, filter domain.RoomReservationsFilter) ([]*domain.Reservation, error) {
		gotFilter = filter
		return nil, nil
	}

	_, err := f.svc.GetRoomReservations(context.Background(), &models.GetRoomReservationsRequest{
		RoomID:    1,
		CallerID:  adminID,
		StartDate: &start,
		EndDate:   &end,
		Status:    ptr.Ptr("approved"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), gotFilter.RoomID)
	assert.Equal(t, &start, gotFilter.StartDate)
	assert.Equal(t, &end, gotFilter.EndDate)
	require.NotNil(t, gotFilter.Status)
	assert.Equal(t, domain.StatusApproved, *gotFilter.Status)
}

// --- Cancel ---

func TestCancel_RequesterCancelsOwn(t *testing.T) {
	f := newFixture()

	var gotReason string
	f.reservations.cancelFunc = func(_ context.Context, _ int64, reason string) error {
		gotReason = reason
		return nil
	}

	err := f.svc.Cancel(context.Background(), 100, &models.CancelReservationRequest{
		CallerID: requesterID,
		Reason:   "événement annulé",
	})
	require.NoError(t, err)
	assert.Equal(t, "événement annulé", gotReason)
}

func TestCancel_AdminCancelsAny(t *testing.T) {
	f := newFixture()

	err := f.svc.Cancel(context.Background(), 100, &models.CancelReservationRequest{
		CallerID: adminID,
		Reason:   "travaux dans la salle",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, f.reservations.cancelCalls)
}

func TestCancel_StrangerDenied(t *testing.T) {
	f := newFixture()

	err := f.svc.Cancel(context.Background(), 100, &models.CancelReservationRequest{
		CallerID: strangerID,
		Reason:   "n/a",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, f.reservations.cancelCalls)
}

func TestCancel_TerminalStatusRefused(t *testing.T) {
	for _, status := range []domain.ReservationStatus{domain.StatusRejected, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture()
			f.reservations.getByIDFunc = func(context.Context, int64) (*domain.Reservation, error) {
				r := pendingReservation()
				r.Status = status
				return r, nil
			}

			err := f.svc.Cancel(context.Background(), 100, &models.CancelReservationRequest{
				CallerID: requesterID,
				Reason:   "trop tard",
			})
			assert.ErrorIs(t, err, ErrCannotCancel)
		})
	}
}

// --- UpdateStatus ---

func TestUpdateStatus_Approve(t *testing.T) {
	f := newFixture()

	err := f.svc.UpdateStatus(context.Background(), 100, &models.UpdateStatusRequest{
		CallerID: adminID,
		Status:   "approved",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.txManager.calls, "decision must run in a transaction")
	assert.Equal(t, 1, f.reservations.updateStatusCalls)

	select {
	case data := <-f.notifier.sent:
		assert.Equal(t, "president@assoc.fr", data.RecipientEmail)
		assert.Equal(t, "Salle des fêtes", data.RoomName)
		assert.Equal(t, domain.StatusApproved, data.Status)
	case <-time.After(time.Second):
		t.Fatal("decision email was not sent")
	}
}

func TestUpdateStatus_Reject(t *testing.T) {
	f := newFixture()

	err := f.svc.UpdateStatus(context.Background(), 100, &models.UpdateStatusRequest{
		CallerID: adminID,
		Status:   "rejected",
	})
	require.NoError(t, err)

	select {
	case data := <-f.notifier.sent:
		assert.Equal(t, domain.StatusRejected, data.Status)
	case <-time.After(time.Second):
		t.Fatal("decision email was not sent")
	}
}

func TestUpdateStatus_NonAdminDenied(t *testing.T) {
	f := newFixture()

	err := f.svc.UpdateStatus(context.Background(), 100, &models.UpdateStatusRequest{
		CallerID: requesterID,
		Status:   "approved",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, f.txManager.calls)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	f := newFixture()
	f.reservations.getByIDFunc = func(context.Context, int64) (*domain.Reservation, error) {
		r := pendingReservation()
		r.Status = domain.StatusApproved
		return r, nil
	}

	err := f.svc.UpdateStatus(context.Background(), 100, &models.UpdateStatusRequest{
		CallerID: adminID,
		Status:   "rejected",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Zero(t, f.reservations.updateStatusCalls)
}

func TestUpdateStatus_ApprovalRechecksConflicts(t *testing.T) {
	f := newFixture()

	other := pendingReservation()
	other.ID = 101
	other.Status = domain.StatusApproved
	f.reservations.getBlockingFunc = func(context.Context, int64, time.Time) ([]*domain.Reservation, error) {
		return []*domain.Reservation{other}, nil
	}

	err := f.svc.UpdateStatus(context.Background(), 100, &models.UpdateStatusRequest{
		CallerID: adminID,
		Status:   "approved",
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Zero(t, f.reservations.updateStatusCalls)
}

func TestUpdateStatus_ApprovalIgnoresSelf(t *testing.T) {
	f := newFixture()

	// Only the reservation being decided occupies the day.
	f.reservations.getBlockingFunc = func(context.Context, int64, time.Time) ([]*domain.Reservation, error) {
		return []*domain.Reservation{pendingReservation()}, nil
	}

	err := f.svc.UpdateStatus(context.Background(), 100, &models.UpdateStatusRequest{
		CallerID: adminID,
		Status:   "approved",
	})
	assert.NoError(t, err)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	f := newFixture()

	err := f.svc.UpdateStatus(context.Background(), 100, &models.UpdateStatusRequest{
		CallerID: adminID,
		Status:   "confirmed",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_NotificationFailureDoesNotFailDecision(t *testing.T) {
	f := newFixture()
	f.notifier.err = errors.New("smtp relay down")

	err := f.svc.UpdateStatus(context.Background(), 100, &models.UpdateStatusRequest{
		CallerID: adminID,
		Status:   "approved",
	})
	require.NoError(t, err)

	select {
	case <-f.notifier.sent:
	case <-time.After(time.Second):
		t.Fatal("decision email was not attempted")
	}
}
