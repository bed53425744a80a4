package domain

import "time"

// UserRole distinguishes the three kinds of requesters.
type UserRole string

const (
	RoleUser        UserRole = "user"        // association member
	RoleAdmin       UserRole = "admin"       // town hall staff
	RoleParticulier UserRole = "particulier" // private individual
)

// UserProfile carries the requester attributes the engine needs.
// Profiles are managed by the onboarding workflow and are read-only here.
type UserProfile struct {
	ID                    int64
	Email                 string
	FirstName             string
	LastName              string
	Role                  UserRole
	AssociationID         *int64
	IsChartrettesResident bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// IsAdmin reports whether the user belongs to town hall staff.
func (u *UserProfile) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// FullName returns the display name used in notification emails.
func (u *UserProfile) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	return u.FirstName + " " + u.LastName
}
