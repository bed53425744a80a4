package association

import "errors"

var (
	// ErrAssociationNotFound is returned when no association matches.
	ErrAssociationNotFound = errors.New("association.repository: association not found")

	// ErrBuildQuery is returned when an SQL statement cannot be built.
	ErrBuildQuery = errors.New("association.repository: failed to build query")

	// ErrExecQuery is returned when an SQL statement fails to execute.
	ErrExecQuery = errors.New("association.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned.
	ErrScanRow = errors.New("association.repository: failed to scan row")
)
