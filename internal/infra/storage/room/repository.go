package room

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/mairie-chartrettes/SalleReservationService/internal/domain"
	"github.com/mairie-chartrettes/SalleReservationService/pkg/dbmetrics"
	"github.com/mairie-chartrettes/SalleReservationService/pkg/psqlbuilder"
)

// DBExecutor is satisfied by *sql.DB, *dbmetrics.DB and an open transaction.
type DBExecutor = dbmetrics.DBExecutor

var roomColumns = []string{
	"id",
	"name",
	"capacity",
	"is_paid",
	"deposit",
	"full_day_chartrettois", "full_day_association", "full_day_exterieur", "has_full_day_tariff",
	"half_day_chartrettois", "half_day_association", "half_day_exterieur", "has_half_day_tariff",
	"hourly_chartrettois", "hourly_association", "hourly_exterieur", "has_hourly_tariff",
	"created_at",
	"updated_at",
}

// Repository reads municipal rooms and their tariff configuration.
// Rooms are written by the admin back office, this service only reads.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a room repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID fetches a room with its tariff tables.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(roomColumns...).
		From("rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	room, err := scanRoom(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan room: %v", ErrScanRow, err)
	}

	return room, nil
}

// List fetches all rooms ordered by name.
func (r *Repository) List(ctx context.Context) ([]*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(roomColumns...).
		From("rooms").
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]*domain.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return rooms, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRoom maps the flattened tariff columns back onto the three
// optional tariff tables. The has_*_tariff flags distinguish "no tariff
// configured" from "tariff of zero".
func scanRoom(row rowScanner) (*domain.Room, error) {
	var room domain.Room
	var fullDay, halfDay, hourly domain.TariffTable
	var hasFullDay, hasHalfDay, hasHourly bool
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&room.ID,
		&room.Name,
		&room.Capacity,
		&room.IsPaid,
		&room.Deposit,
		&fullDay.Chartrettois, &fullDay.Association, &fullDay.Exterieur, &hasFullDay,
		&halfDay.Chartrettois, &halfDay.Association, &halfDay.Exterieur, &hasHalfDay,
		&hourly.Chartrettois, &hourly.Association, &hourly.Exterieur, &hasHourly,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if hasFullDay {
		room.PricingFullDay = &fullDay
	}
	if hasHalfDay {
		room.PricingHalfDay = &halfDay
	}
	if hasHourly {
		room.PricingHourly = &hourly
	}

	room.CreatedAt = createdAt.Time
	room.UpdatedAt = updatedAt.Time

	return &room, nil
}
