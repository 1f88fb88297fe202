package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/lsoftware/inventory/internal/database"
	apperrors "github.com/lsoftware/inventory/internal/errors"
	"github.com/lsoftware/inventory/internal/user/domain"
)

// PostgreSQLRoleRepository handles role persistence for PostgreSQL
type PostgreSQLRoleRepository struct {
	db *sql.DB
}

// NewPostgreSQLRoleRepository creates a new PostgreSQLRoleRepository
func NewPostgreSQLRoleRepository(db *sql.DB) *PostgreSQLRoleRepository {
	return &PostgreSQLRoleRepository{
		db: db,
	}
}

// Create inserts a new role
func (r *PostgreSQLRoleRepository) Create(ctx context.Context, role *domain.Role) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO roles (id, name, description, created_at) VALUES ($1, $2, $3, $4)`

	_, err := querier.ExecContext(ctx, query, role.ID, role.Name, role.Description, role.CreatedAt)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrRoleAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create role")
	}
	return nil
}

// List returns every role ordered by name
func (r *PostgreSQLRoleRepository) List(ctx context.Context) ([]*domain.Role, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, description, created_at FROM roles ORDER BY name`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list roles")
	}
	return collectRoles(rows)
}

// GetByIDs returns the roles matching ids; unknown ids are ignored
func (r *PostgreSQLRoleRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Role, error) {
	if len(ids) == 0 {
		return []*domain.Role{}, nil
	}
	querier := database.GetTx(ctx, r.db)

	values := make([]string, 0, len(ids))
	for _, id := range ids {
		values = append(values, id.String())
	}

	query := `SELECT id, name, description, created_at FROM roles WHERE id = ANY($1::uuid[]) ORDER BY name`

	rows, err := querier.QueryContext(ctx, query, pq.Array(values))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get roles by id")
	}
	return collectRoles(rows)
}

func collectRoles(rows *sql.Rows) ([]*domain.Role, error) {
	defer func() { _ = rows.Close() }()

	roles := make([]*domain.Role, 0)
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan role")
		}
		roles = append(roles, &role)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate roles")
	}
	return roles, nil
}
