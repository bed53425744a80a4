package user

import "errors"

var (
	// ErrUserNotFound is returned when no user matches.
	ErrUserNotFound = errors.New("user.repository: user not found")

	// ErrBuildQuery is returned when an SQL statement cannot be built.
	ErrBuildQuery = errors.New("user.repository: failed to build query")

	// ErrExecQuery is returned when an SQL statement fails to execute.
	ErrExecQuery = errors.New("user.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned.
	ErrScanRow = errors.New("user.repository: failed to scan row")
)
