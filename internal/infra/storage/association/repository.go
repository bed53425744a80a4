package association

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

// Repository reads billing associations. The only write is the
// idempotent provisioning upsert run once at startup; request handling
// never writes reference data.
type Repository struct {
	db DBExecutor
}

// NewRepository creates an association repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID fetches an association by ID.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Association, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "email", "created_at", "updated_at").
		From("associations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByName fetches an association by its exact name.
func (r *Repository) GetByName(ctx context.Context, name string) (*domain.Association, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "email", "created_at", "updated_at").
		From("associations").
		Where(squirrel.Eq{"name": name}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByName - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByName")
}

// EnsureByName returns the ID of the association with the given name,
// creating it when absent. Relies on the unique constraint on name, so
// concurrent startups converge on a single row.
func (r *Repository) EnsureByName(ctx context.Context, name string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("associations").
		Columns("name").
		Values(name).
		Suffix("ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: EnsureByName - build upsert query: %v", ErrBuildQuery, err)
	}

	var id int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("%w: EnsureByName - execute upsert: %v", ErrExecQuery, err)
	}

	return id, nil
}

func (r *Repository) scanOne(row *sql.Row, op string) (*domain.Association, error) {
	var assoc domain.Association
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&assoc.ID,
		&assoc.Name,
		&assoc.Email,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAssociationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan association: %v", ErrScanRow, op, err)
	}

	assoc.CreatedAt = createdAt.Time
	assoc.UpdatedAt = updatedAt.Time

	return &assoc, nil
}
