package reservation

import "github.com/mairie-chartrettes/SalleReservationService/pkg/dbmetrics"

// DBExecutor is satisfied by *sql.DB, *dbmetrics.DB and an open
// transaction, so the repository never cares which one it runs on.
type DBExecutor = dbmetrics.DBExecutor
