package domain

import "time"

// Association is a billing entity. Every reservation is billed to one,
// including admin bookings (town hall) and private individuals
// (a shared virtual association).
type Association struct {
	ID        int64
	Name      string
	Email     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WellKnownAssociations holds the IDs of the two associations the
// service depends on. They are provisioned at startup and injected as
// configuration instead of being looked up by name at request time.
type WellKnownAssociations struct {
	TownHallID    int64 // billing target for admin bookings
	IndividualsID int64 // billing target for private individuals
}
