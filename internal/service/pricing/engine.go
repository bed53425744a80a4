package pricing

import (
	"github.com/mairie-chartrettes/SalleReservationService/internal/domain"
)

// Engine computes the price of a reservation from the room tariff
// configuration, the requester profile and the requested slots.
// It is a pure function holder: no storage, no clock, no side effects.
type Engine struct{}

// NewEngine creates a pricing engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Compute returns the pricing result for the given inputs.
//
// The hour count is the number of requested slots (each slot is exactly
// one hour by construction). Tier and category resolution both use fixed
// first-match-wins orderings; in particular a Chartrettes resident who
// also belongs to an association is billed at the resident rate, never
// the association rate.
func (e *Engine) Compute(room *domain.Room, user *domain.UserProfile, slots []domain.TimeSlot) (*domain.PricingResult, error) {
	hourCount := len(slots)
	tier := durationTier(hourCount)
	userType := resolveUserType(user)

	result := &domain.PricingResult{
		DurationType:  tier,
		UserType:      userType,
		HourCount:     hourCount,
		DepositAmount: room.Deposit, // deposit is owed even for free rooms
	}

	if !room.IsPaid {
		result.TotalPrice = 0
		return result, nil
	}

	tariff := room.TariffFor(tier)
	if tariff == nil {
		return nil, ErrMissingTariff
	}

	rate := tariff.AmountFor(userType)
	if tier == domain.DurationHourly {
		// Per-hour rate scales linearly with the number of slots.
		result.TotalPrice = rate * float64(hourCount)
	} else {
		// Half-day and full-day are flat fees: an 8-hour and a 14-hour
		// booking pay the same full-day rate.
		result.TotalPrice = rate
	}

	return result, nil
}

// durationTier maps an hour count onto a pricing tier.
func durationTier(hourCount int) domain.DurationType {
	switch {
	case hourCount >= domain.FullDayHourThreshold:
		return domain.DurationFullDay
	case hourCount >= domain.HalfDayHourThreshold:
		return domain.DurationHalfDay
	default:
		return domain.DurationHourly
	}
}

// resolveUserType maps a requester profile onto a billing category.
// Residency takes precedence over association membership.
func resolveUserType(user *domain.UserProfile) domain.UserType {
	if user.IsChartrettesResident {
		return domain.UserTypeChartrettois
	}
	if user.Role == domain.RoleUser && user.AssociationID != nil {
		return domain.UserTypeAssociation
	}
	return domain.UserTypeExterieur
}
