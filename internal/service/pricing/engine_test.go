package pricing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mairie-chartrettes/SalleReservationService/internal/domain"
	"github.com/mairie-chartrettes/SalleReservationService/pkg/ptr"
	"github.com/mairie-chartrettes/SalleReservationService/pkg/types"
)

// makeSlots builds n contiguous one-hour slots starting at 08:00.
func makeSlots(t *testing.T, n int) []domain.TimeSlot {
	t.Helper()
	slots := make([]domain.TimeSlot, 0, n)
	start := types.TimeString("08:00")
	for i := 0; i < n; i++ {
		end, err := start.AddMinutes(60)
		require.NoError(t, err)
		slots = append(slots, domain.TimeSlot{Start: start, End: end})
		start = end
	}
	return slots
}

func paidRoom() *domain.Room {
	return &domain.Room{
		ID:      1,
		Name:    "Salle des fêtes",
		IsPaid:  true,
		Deposit: 300,
		PricingFullDay: &domain.TariffTable{
			Chartrettois: 150,
			Association:  100,
			Exterieur:    400,
		},
		PricingHalfDay: &domain.TariffTable{
			Chartrettois: 80,
			Association:  60,
			Exterieur:    220,
		},
		PricingHourly: &domain.TariffTable{
			Chartrettois: 15,
			Association:  10,
			Exterieur:    40,
		},
	}
}

func residentUser() *domain.UserProfile {
	return &domain.UserProfile{ID: 1, Role: domain.RoleUser, IsChartrettesResident: true}
}

func associationUser() *domain.UserProfile {
	return &domain.UserProfile{ID: 2, Role: domain.RoleUser, AssociationID: ptr.Ptr(int64(7))}
}

func exteriorUser() *domain.UserProfile {
	return &domain.UserProfile{ID: 3, Role: domain.RoleParticulier}
}

func TestCompute_TierBoundaries(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		hours int
		want  domain.DurationType
	}{
		{1, domain.DurationHourly},
		{3, domain.DurationHourly},
		{4, domain.DurationHalfDay},
		{7, domain.DurationHalfDay},
		{8, domain.DurationFullDay},
		{13, domain.DurationFullDay},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dh", tt.hours), func(t *testing.T) {
			result, err := engine.Compute(paidRoom(), residentUser(), makeSlots(t, tt.hours))
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.DurationType)
			assert.Equal(t, tt.hours, result.HourCount)
		})
	}
}

func TestCompute_CategoryPrecedence(t *testing.T) {
	engine := NewEngine()

	// A resident who also belongs to an association is billed at the
	// resident rate, never the association rate.
	user := &domain.UserProfile{
		ID:                    4,
		Role:                  domain.RoleUser,
		AssociationID:         ptr.Ptr(int64(7)),
		IsChartrettesResident: true,
	}

	result, err := engine.Compute(paidRoom(), user, makeSlots(t, 2))
	require.NoError(t, err)
	assert.Equal(t, domain.UserTypeChartrettois, result.UserType)
	assert.Equal(t, 30.0, result.TotalPrice) // 15 * 2, resident hourly rate
}

func TestCompute_UserCategories(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name string
		user *domain.UserProfile
		want domain.UserType
	}{
		{"resident", residentUser(), domain.UserTypeChartrettois},
		{"association member", associationUser(), domain.UserTypeAssociation},
		{"particulier", exteriorUser(), domain.UserTypeExterieur},
		{"admin without residency", &domain.UserProfile{ID: 9, Role: domain.RoleAdmin}, domain.UserTypeExterieur},
		{"user without association", &domain.UserProfile{ID: 10, Role: domain.RoleUser}, domain.UserTypeExterieur},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Compute(paidRoom(), tt.user, makeSlots(t, 1))
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.UserType)
		})
	}
}

func TestCompute_HourlyPriceScalesLinearly(t *testing.T) {
	engine := NewEngine()

	// pricingHourly.association = 10, 3 hours -> 30
	result, err := engine.Compute(paidRoom(), associationUser(), makeSlots(t, 3))
	require.NoError(t, err)
	assert.Equal(t, domain.DurationHourly, result.DurationType)
	assert.Equal(t, 30.0, result.TotalPrice)
}

func TestCompute_FlatTierDoesNotScale(t *testing.T) {
	engine := NewEngine()

	eightHours, err := engine.Compute(paidRoom(), associationUser(), makeSlots(t, 8))
	require.NoError(t, err)
	thirteenHours, err := engine.Compute(paidRoom(), associationUser(), makeSlots(t, 13))
	require.NoError(t, err)

	assert.Equal(t, domain.DurationFullDay, eightHours.DurationType)
	assert.Equal(t, domain.DurationFullDay, thirteenHours.DurationType)
	assert.Equal(t, eightHours.TotalPrice, thirteenHours.TotalPrice)
	assert.Equal(t, 100.0, eightHours.TotalPrice)
}

func TestCompute_FreeRoomInvariant(t *testing.T) {
	engine := NewEngine()

	room := paidRoom()
	room.IsPaid = false

	for _, hours := range []int{1, 4, 8} {
		for _, user := range []*domain.UserProfile{residentUser(), associationUser(), exteriorUser()} {
			result, err := engine.Compute(room, user, makeSlots(t, hours))
			require.NoError(t, err)
			assert.Equal(t, 0.0, result.TotalPrice)
			// A free room can still require a security deposit.
			assert.Equal(t, room.Deposit, result.DepositAmount)
		}
	}
}

func TestCompute_FreeRoomIgnoresMissingTariffs(t *testing.T) {
	engine := NewEngine()

	room := &domain.Room{ID: 2, Name: "Préau", IsPaid: false, Deposit: 150}

	result, err := engine.Compute(room, exteriorUser(), makeSlots(t, 5))
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.TotalPrice)
	assert.Equal(t, 150.0, result.DepositAmount)
}

func TestCompute_MissingTariffOnPaidRoom(t *testing.T) {
	engine := NewEngine()

	room := paidRoom()
	room.PricingHalfDay = nil

	_, err := engine.Compute(room, residentUser(), makeSlots(t, 5))
	assert.ErrorIs(t, err, ErrMissingTariff)
}

func TestCompute_DepositIsFlat(t *testing.T) {
	engine := NewEngine()

	for _, hours := range []int{1, 5, 10} {
		result, err := engine.Compute(paidRoom(), exteriorUser(), makeSlots(t, hours))
		require.NoError(t, err)
		assert.Equal(t, 300.0, result.DepositAmount)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	engine := NewEngine()

	room := paidRoom()
	user := associationUser()
	slots := makeSlots(t, 6)

	first, err := engine.Compute(room, user, slots)
	require.NoError(t, err)
	second, err := engine.Compute(room, user, slots)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
