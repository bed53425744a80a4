package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const timeLayout = "15:04"

// TimeString represents a wall-clock time of day in "HH:MM" format.
// It is stored as a plain string so that it maps directly onto the
// TIME column type and JSON payloads.
type TimeString string

// NewTimeString builds a TimeString from the time-of-day part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate checks that the value is a well-formed "HH:MM" time.
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("invalid time string format: %v", err)
	}
	return nil
}

// IsZero reports whether the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// String returns the raw "HH:MM" representation.
func (t TimeString) String() string {
	return string(t)
}

// toTime parses the value against a fixed reference day.
func (t TimeString) toTime() (time.Time, error) {
	return time.Parse(timeLayout, string(t))
}

// IsBefore reports whether t is strictly earlier in the day than other.
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.toTime()
	b, errB := other.toTime()
	if errA != nil || errB != nil {
		return false
	}
	return a.Before(b)
}

// IsAfter reports whether t is strictly later in the day than other.
func (t TimeString) IsAfter(other TimeString) bool {
	a, errA := t.toTime()
	b, errB := other.toTime()
	if errA != nil || errB != nil {
		return false
	}
	return a.After(b)
}

// AddMinutes returns the time-of-day n minutes later.
// The result wraps around midnight like a 24h clock.
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	parsed, err := t.toTime()
	if err != nil {
		return "", err
	}
	return TimeString(parsed.Add(time.Duration(n) * time.Minute).Format(timeLayout)), nil
}

// MinutesUntil returns the number of minutes from t to other.
// The result is negative when other is earlier than t.
func (t TimeString) MinutesUntil(other TimeString) (int, error) {
	a, err := t.toTime()
	if err != nil {
		return 0, err
	}
	b, err := other.toTime()
	if err != nil {
		return 0, err
	}
	return int(b.Sub(a) / time.Minute), nil
}

// Value implements driver.Valuer so TimeString maps onto TIME columns.
func (t TimeString) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan implements sql.Scanner.
// Postgres returns TIME columns either as a string or as time.Time
// depending on the driver, both are accepted.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		if len(v) > 5 {
			v = v[:5] // trim seconds from "HH:MM:SS"
		}
		*t = TimeString(v)
		return nil
	case []byte:
		return t.Scan(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return errors.New("types: unsupported source type for TimeString")
	}
}
