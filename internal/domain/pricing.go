package domain

// DurationType is the pricing tier derived from the number of booked
// hours.
type DurationType string

const (
	DurationHourly  DurationType = "hourly"
	DurationHalfDay DurationType = "half_day"
	DurationFullDay DurationType = "full_day"
)

// UserType is the billing category derived from the requester profile.
type UserType string

const (
	UserTypeChartrettois UserType = "chartrettois"
	UserTypeAssociation  UserType = "association"
	UserTypeExterieur    UserType = "exterieur"
)

// PricingResult is the pure output of the pricing engine. It is copied
// onto the reservation at creation time, never persisted on its own.
type PricingResult struct {
	TotalPrice    float64
	DepositAmount float64
	DurationType  DurationType
	UserType      UserType
	HourCount     int
}
