package user

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

// Repository reads user profiles. Profiles are managed by the
// onboarding workflow, this service only reads them.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a user repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID fetches a user profile.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.UserProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"email",
		"first_name",
		"last_name",
		"role",
		"association_id",
		"is_chartrettes_resident",
		"created_at",
		"updated_at",
	).
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var user domain.UserProfile
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.AssociationID,
		&user.IsChartrettesResident,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan user: %v", ErrScanRow, err)
	}

	user.CreatedAt = createdAt.Time
	user.UpdatedAt = updatedAt.Time

	return &user, nil
}
