package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/lsoftware/inventory/internal/database"
	apperrors "github.com/lsoftware/inventory/internal/errors"
	"github.com/lsoftware/inventory/internal/user/domain"
)

// MySQLRoleRepository handles role persistence for MySQL
type MySQLRoleRepository struct {
	db *sql.DB
}

// NewMySQLRoleRepository creates a new MySQLRoleRepository
func NewMySQLRoleRepository(db *sql.DB) *MySQLRoleRepository {
	return &MySQLRoleRepository{
		db: db,
	}
}

// Create inserts a new role
func (r *MySQLRoleRepository) Create(ctx context.Context, role *domain.Role) error {
	querier := database.GetTx(ctx, r.db)

	uuidBytes, err := role.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `INSERT INTO roles (id, name, description, created_at) VALUES (?, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query, uuidBytes, role.Name, role.Description, role.CreatedAt)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrRoleAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create role")
	}
	return nil
}

// List returns every role ordered by name
func (r *MySQLRoleRepository) List(ctx context.Context) ([]*domain.Role, error) {
	querier := database.GetTx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, `SELECT id, name, description, created_at FROM roles ORDER BY name`)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list roles")
	}
	return collectMySQLRoles(rows)
}

// GetByIDs returns the roles matching ids; unknown ids are ignored
func (r *MySQLRoleRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Role, error) {
	if len(ids) == 0 {
		return []*domain.Role{}, nil
	}
	querier := database.GetTx(ctx, r.db)

	placeholders := make([]string, 0, len(ids))
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		uuidBytes, err := id.MarshalBinary()
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to marshal UUID")
		}
		placeholders = append(placeholders, "?")
		args = append(args, uuidBytes)
	}

	query := `SELECT id, name, description, created_at FROM roles WHERE id IN (` +
		strings.Join(placeholders, ", ") + `) ORDER BY name`

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get roles by id")
	}
	return collectMySQLRoles(rows)
}

func collectMySQLRoles(rows *sql.Rows) ([]*domain.Role, error) {
	defer func() { _ = rows.Close() }()

	roles := make([]*domain.Role, 0)
	for rows.Next() {
		role, err := scanMySQLRole(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan role")
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate roles")
	}
	return roles, nil
}
