package domain

import "errors"

// Slot geometry
const (
	// SlotDurationMinutes is the fixed length of a bookable slot.
	// Every request is an ordered sequence of contiguous one-hour slots.
	SlotDurationMinutes = 60

	// Room operating hours used when listing free slots. The conflict
	// checker itself does not enforce them.
	OpeningTime = "08:00"
	ClosingTime = "22:00"
)

// Pricing tier thresholds, in hours. First match wins, evaluated from
// the largest tier down.
const (
	FullDayHourThreshold = 8
	HalfDayHourThreshold = 4
)

// Advance-notice defaults, in days. The standard submission flow and the
// quick-booking flow use different windows; the usecase receives the
// window as a parameter, these are the configuration defaults.
const (
	DefaultMinAdvanceDays      = 30
	DefaultQuickMinAdvanceDays = 7
)

// Well-known association names, used only by startup provisioning.
const (
	TownHallAssociationName    = "Mairie de Chartrettes"
	IndividualsAssociationName = "Particuliers"
)

// Validation constants
const (
	MaxSlotsPerReservation   = 14 // 08:00 - 22:00
	MaxEventLabelLength      = 200
	MaxCancellationReasonLen = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ErrSlotNotOneHour is returned by TimeSlot.Validate for slots that are
// not exactly one hour long.
var ErrSlotNotOneHour = errors.New("domain: time slot must be exactly one hour")

// BlockingStatuses are the statuses that occupy slots for conflict
// detection.
var BlockingStatuses = []ReservationStatus{
	StatusPending,
	StatusApproved,
}

// TerminalStatuses are the statuses a reservation can no longer leave.
var TerminalStatuses = []ReservationStatus{
	StatusRejected,
	StatusCancelled,
}
