package reservation

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/mairie-chartrettes/SalleReservationService/internal/domain"
	"github.com/mairie-chartrettes/SalleReservationService/pkg/dbmetrics"
	"github.com/mairie-chartrettes/SalleReservationService/pkg/psqlbuilder"
	"github.com/mairie-chartrettes/SalleReservationService/pkg/types"
)

// slotRecord is the persisted shape of one slot inside the jsonb column.
type slotRecord struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

var reservationColumns = []string{
	"id",
	"code",
	"room_id",
	"requester_id",
	"billing_association_id",
	"reservation_date",
	"slots",
	"status",
	"total_price",
	"deposit_amount",
	"duration_type",
	"user_type",
	"hour_count",
	"event_label",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository persists reservations in Postgres.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a reservation repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new reservation.
// When the context carries an active transaction (placed there by the
// transaction manager) the insert runs on it; the create-reservation
// usecase relies on this to keep conflict check and insert in one
// serializable transaction.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	slots, err := marshalSlots(reservation.Slots)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal slots: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"code",
			"room_id",
			"requester_id",
			"billing_association_id",
			"reservation_date",
			"slots",
			"status",
			"total_price",
			"deposit_amount",
			"duration_type",
			"user_type",
			"hour_count",
			"event_label",
		).
		Values(
			reservation.Code,
			reservation.RoomID,
			reservation.RequesterID,
			reservation.BillingAssociationID,
			reservation.Date,
			slots,
			reservation.Status,
			reservation.TotalPrice,
			reservation.DepositAmount,
			reservation.DurationType,
			reservation.UserType,
			reservation.HourCount,
			reservation.EventLabel,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// GetByID fetches a reservation by its internal ID.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return reservation, nil
}

// GetBlockingByRoomAndDate fetches the pending and approved reservations
// of a room whose date falls on the same calendar day as date.
// Day boundaries are [startOfDay, startOfDay+1d).
//
// Inside a transaction the rows are locked FOR UPDATE so that two
// concurrent create requests for the same room and day serialize.
func (r *Repository) GetBlockingByRoomAndDate(ctx context.Context, roomID int64, date time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	blocking := make([]string, len(domain.BlockingStatuses))
	for i, s := range domain.BlockingStatuses {
		blocking[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.GtOrEq{"reservation_date": startOfDay}).
		Where(squirrel.Lt{"reservation_date": endOfDay}).
		Where(squirrel.Eq{"status": blocking}).
		OrderBy("created_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockingByRoomAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockingByRoomAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetByRoomWithFilter fetches reservations of a room with optional date
// range, status and blocking-only filters. Used by the admin day view.
func (r *Repository) GetByRoomWithFilter(ctx context.Context, filter domain.RoomReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"room_id": filter.RoomID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"reservation_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"reservation_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if filter.OnlyBlocking {
		blocking := make([]string, len(domain.BlockingStatuses))
		for i, s := range domain.BlockingStatuses {
			blocking[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": blocking})
	}

	selectBuilder = selectBuilder.OrderBy("reservation_date ASC, created_at ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRoomWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRoomWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetByRequesterID fetches a user's reservation history, optionally
// filtered by status, most recent first.
func (r *Repository) GetByRequesterID(ctx context.Context, requesterID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"requester_id": requesterID}).
		OrderBy("reservation_date DESC, created_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRequesterID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRequesterID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// UpdateStatus sets a reservation status. Used by the approval workflow.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// Cancel marks a reservation cancelled, recording the reason.
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var slotsRaw []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&reservation.ID,
		&reservation.Code,
		&reservation.RoomID,
		&reservation.RequesterID,
		&reservation.BillingAssociationID,
		&reservation.Date,
		&slotsRaw,
		&reservation.Status,
		&reservation.TotalPrice,
		&reservation.DepositAmount,
		&reservation.DurationType,
		&reservation.UserType,
		&reservation.HourCount,
		&reservation.EventLabel,
		&reservation.CancellationReason,
		&reservation.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	reservation.Slots, err = unmarshalSlots(slotsRaw)
	if err != nil {
		return nil, err
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

func marshalSlots(slots []domain.TimeSlot) ([]byte, error) {
	records := make([]slotRecord, len(slots))
	for i, s := range slots {
		records[i] = slotRecord{Start: s.Start.String(), End: s.End.String()}
	}
	return json.Marshal(records)
}

func unmarshalSlots(raw []byte) ([]domain.TimeSlot, error) {
	var records []slotRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	slots := make([]domain.TimeSlot, len(records))
	for i, rec := range records {
		slots[i] = domain.TimeSlot{
			Start: types.TimeString(rec.Start),
			End:   types.TimeString(rec.End),
		}
	}
	return slots, nil
}
