package room

import "errors"

var (
	// ErrRoomNotFound is returned when no room matches.
	ErrRoomNotFound = errors.New("room.repository: room not found")

	// ErrBuildQuery is returned when an SQL statement cannot be built.
	ErrBuildQuery = errors.New("room.repository: failed to build query")

	// ErrExecQuery is returned when an SQL statement fails to execute.
	ErrExecQuery = errors.New("room.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned.
	ErrScanRow = errors.New("room.repository: failed to scan row")
)
