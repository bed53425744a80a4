package domain

import "time"

// TariffTable maps each user category to an amount in euros. Tariffs are
// a closed three-variant record so a missing category is impossible by
// construction.
type TariffTable struct {
	Chartrettois float64
	Association  float64
	Exterieur    float64
}

// AmountFor returns the amount for the given category.
func (t TariffTable) AmountFor(userType UserType) float64 {
	switch userType {
	case UserTypeChartrettois:
		return t.Chartrettois
	case UserTypeAssociation:
		return t.Association
	default:
		return t.Exterieur
	}
}

// Room represents a municipal room and its tariff configuration.
// Rooms are created and edited by the admin UI; this service only reads
// them.
type Room struct {
	ID       int64
	Name     string
	Capacity int

	// Tariff configuration. A nil table means no tariff has been set up
	// for that duration tier. When IsPaid is false the price is always
	// zero regardless of the tables; the deposit is owed either way.
	IsPaid         bool
	Deposit        float64
	PricingFullDay *TariffTable
	PricingHalfDay *TariffTable
	PricingHourly  *TariffTable

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TariffFor returns the tariff table matching the duration tier, which
// may be nil when unset.
func (r *Room) TariffFor(tier DurationType) *TariffTable {
	switch tier {
	case DurationFullDay:
		return r.PricingFullDay
	case DurationHalfDay:
		return r.PricingHalfDay
	default:
		return r.PricingHourly
	}
}
