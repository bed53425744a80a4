package create_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mairie-chartrettes/SalleReservationService/internal/domain"
	"github.com/mairie-chartrettes/SalleReservationService/internal/integrations/mailer"
	roomRepo "github.com/mairie-chartrettes/SalleReservationService/internal/infra/storage/room"
	userRepo "github.com/mairie-chartrettes/SalleReservationService/internal/infra/storage/user"
	"github.com/mairie-chartrettes/SalleReservationService/internal/service/pricing"
	"github.com/mairie-chartrettes/SalleReservationService/pkg/ptr"
	"github.com/mairie-chartrettes/SalleReservationService/pkg/types"
)

// --- mocks ---

type mockReservationRepo struct {
	createFunc func(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error)
}

func (m *mockReservationRepo) Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, r)
	}
	r.ID = 100
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	return r, nil
}

type mockRoomRepo struct {
	getByIDFunc func(ctx context.Context, id int64) (*domain.Room, error)
}

func (m *mockRoomRepo) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return testRoom(), nil
}

type mockUserRepo struct {
	getByIDFunc func(ctx context.Context, id int64) (*domain.UserProfile, error)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.UserProfile, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return testRequester(), nil
}

type mockAvailability struct {
	hasConflictFunc func(ctx context.Context, roomID int64, date time.Time, slots []domain.TimeSlot) (bool, error)
}

func (m *mockAvailability) HasConflict(ctx context.Context, roomID int64, date time.Time, slots []domain.TimeSlot) (bool, error) {
	if m.hasConflictFunc != nil {
		return m.hasConflictFunc(ctx, roomID, date, slots)
	}
	return false, nil
}

type mockNotifier struct {
	sent chan mailer.ConfirmationData
	err  error
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{sent: make(chan mailer.ConfirmationData, 1)}
}

func (m *mockNotifier) SendReservationConfirmation(data mailer.ConfirmationData) error {
	m.sent <- data
	return m.err
}

// passthroughTxManager runs the function directly, without a database.
type passthroughTxManager struct {
	calls int
}

func (m *passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- fixtures ---

func testRoom() *domain.Room {
	return &domain.Room{
		ID:      1,
		Name:    "Salle polyvalente",
		IsPaid:  true,
		Deposit: 300,
		PricingFullDay: &domain.TariffTable{Chartrettois: 150, Association: 100, Exterieur: 400},
		PricingHalfDay: &domain.TariffTable{Chartrettois: 80, Association: 60, Exterieur: 220},
		PricingHourly:  &domain.TariffTable{Chartrettois: 15, Association: 10, Exterieur: 40},
	}
}

func testRequester() *domain.UserProfile {
	return &domain.UserProfile{
		ID:            5,
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

type fixture struct {
	uc           *UseCase
	reservations *mockReservationRepo
	rooms        *mockRoomRepo
	users        *mockUserRepo
	availability *mockAvailability
	notifier     *mockNotifier
	txManager    *passthroughTxManager
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		reservations: &mockReservationRepo{},
		rooms:        &mockRoomRepo{},
		users:        &mockUserRepo{},
		availability: &mockAvailability{},
		notifier:     newMockNotifier(),
		txManager:    &passthroughTxManager{},
	}
	f.uc = NewUseCase(
		f.reservations,
		f.rooms,
		f.users,
		f.availability,
		pricing.NewEngine(),
		f.notifier,
		f.txManager,
		domain.WellKnownAssociations{TownHallID: 1, IndividualsID: 2},
		nopLogger{},
	)
	f.uc.timeProvider = &fixedTimeProvider{now: now}
	return f
}

var today = time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

func validRequest() *Request {
	return &Request{
		RequesterID:    5,
		RoomID:         1,
		Date:           time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC),
		Slots:          []domain.TimeSlot{slot("09:00", "10:00"), slot("10:00", "11:00"), slot("11:00", "12:00")},
		MinAdvanceDays: 30,
	}
}

// --- tests ---

func TestExecute_CreatesPendingReservation(t *testing.T) {
	f := newFixture(today)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, int64(7), resp.BillingAssociationID) // requester's own association
	assert.Equal(t, 30.0, resp.TotalPrice)               // hourly association rate 10 x 3
	assert.Equal(t, 300.0, resp.DepositAmount)
	assert.Equal(t, string(domain.DurationHourly), resp.DurationType)
	assert.Equal(t, string(domain.UserTypeAssociation), resp.UserType)
	assert.Equal(t, 3, resp.HourCount)
	assert.NotEmpty(t, resp.Code)
	assert.Equal(t, 1, f.txManager.calls, "check and insert must share one transaction")
}

func TestExecute_AdminSelfApprovalAndTownHallBilling(t *testing.T) {
	f := newFixture(today)
	f.users.getByIDFunc = func(context.Context, int64) (*domain.UserProfile, error) {
		return &domain.UserProfile{ID: 9, Email: "mairie@chartrettes.fr", LastName: "Mairie", Role: domain.RoleAdmin}, nil
	}

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusApproved), resp.Status)
	assert.Equal(t, int64(1), resp.BillingAssociationID)
}

func TestExecute_ParticulierBilledToIndividuals(t *testing.T) {
	f := newFixture(today)
	f.users.getByIDFunc = func(context.Context, int64) (*domain.UserProfile, error) {
		return &domain.UserProfile{ID: 11, Email: "dupont@exemple.fr", LastName: "Dupont", Role: domain.RoleParticulier}, nil
	}

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, int64(2), resp.BillingAssociationID)
}

func TestExecute_MissingAssociation(t *testing.T) {
	f := newFixture(today)
	f.users.getByIDFunc = func(context.Context, int64) (*domain.UserProfile, error) {
		return &domain.UserProfile{ID: 12, Role: domain.RoleUser}, nil
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrMissingAssociation)
}

func TestExecute_AdminWithoutProvisionedTownHall(t *testing.T) {
	f := newFixture(today)
	f.uc.wellKnown = domain.WellKnownAssociations{}
	f.users.getByIDFunc = func(context.Context, int64) (*domain.UserProfile, error) {
		return &domain.UserProfile{ID: 9, Role: domain.RoleAdmin}, nil
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestExecute_PastDate(t *testing.T) {
	f := newFixture(today)

	req := validRequest()
	req.Date = time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPastDate)
}

func TestExecute_AdvanceNoticeWindow(t *testing.T) {
	// today = 2025-06-01, minAdvanceDays = 30:
	// 2025-06-20 is inside the window, 2025-07-05 is not.
	f := newFixture(today)

	req := validRequest()
	req.Date = time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAdvanceNotice)

	req = validRequest()
	req.Date = time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC)
	_, err = f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_QuickBookingWindow(t *testing.T) {
	// The quick-booking entry point passes a 7-day window instead.
	f := newFixture(today)

	req := validRequest()
	req.MinAdvanceDays = 7
	req.Date = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_SlotConflict(t *testing.T) {
	f := newFixture(today)
	f.availability.hasConflictFunc = func(context.Context, int64, time.Time, []domain.TimeSlot) (bool, error) {
		return true, nil
	}

	created := false
	f.reservations.createFunc = func(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error) {
		created = true
		return r, nil
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.False(t, created, "conflicting request must not be persisted")
}

func TestExecute_AvailabilityStorageError(t *testing.T) {
	f := newFixture(today)
	f.availability.hasConflictFunc = func(context.Context, int64, time.Time, []domain.TimeSlot) (bool, error) {
		return false, errors.New("connection refused")
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_RoomNotFound(t *testing.T) {
	f := newFixture(today)
	f.rooms.getByIDFunc = func(context.Context, int64) (*domain.Room, error) {
		return nil, roomRepo.ErrRoomNotFound
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestExecute_UserNotFound(t *testing.T) {
	f := newFixture(today)
	f.users.getByIDFunc = func(context.Context, int64) (*domain.UserProfile, error) {
		return nil, userRepo.ErrUserNotFound
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestExecute_MissingTariff(t *testing.T) {
	f := newFixture(today)
	f.rooms.getByIDFunc = func(context.Context, int64) (*domain.Room, error) {
		room := testRoom()
		room.PricingHourly = nil
		return room, nil
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrMissingTariff)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(today)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"no slots", func(r *Request) { r.Slots = nil }},
		{"zero requester", func(r *Request) { r.RequesterID = 0 }},
		{"zero room", func(r *Request) { r.RoomID = 0 }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"two-hour slot", func(r *Request) { r.Slots = []domain.TimeSlot{slot("09:00", "11:00")} }},
		{"reversed slot", func(r *Request) { r.Slots = []domain.TimeSlot{slot("10:00", "09:00")} }},
		{"gap between slots", func(r *Request) {
			r.Slots = []domain.TimeSlot{slot("09:00", "10:00"), slot("11:00", "12:00")}
		}},
		{"unordered slots", func(r *Request) {
			r.Slots = []domain.TimeSlot{slot("10:00", "11:00"), slot("09:00", "10:00")}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_SendsConfirmationEmail(t *testing.T) {
	f := newFixture(today)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	select {
	case data := <-f.notifier.sent:
		assert.Equal(t, "president@assoc.fr", data.RecipientEmail)
		assert.Equal(t, "Salle polyvalente", data.RoomName)
		assert.Equal(t, resp.Code, data.Code)
		assert.Equal(t, domain.StatusPending, data.Status)
	case <-time.After(time.Second):
		t.Fatal("confirmation email was not sent")
	}
}

func TestExecute_NotificationFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture(today)
	f.notifier.err = errors.New("smtp relay down")

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)

	select {
	case <-f.notifier.sent:
	case <-time.After(time.Second):
		t.Fatal("confirmation email was not attempted")
	}
}
