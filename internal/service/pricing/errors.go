package pricing

import "errors"

var (
	// ErrMissingTariff is returned when a paid room has no tariff table
	// configured for the selected duration tier. This is a room setup
	// defect, not a user error.
	ErrMissingTariff = errors.New("pricing: no tariff configured for this duration tier")
)
