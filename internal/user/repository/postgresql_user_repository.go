// Package repository provides data persistence implementations for user and role entities.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/lsoftware/inventory/internal/database"
	apperrors "github.com/lsoftware/inventory/internal/errors"
	"github.com/lsoftware/inventory/internal/user/domain"
)

// PostgreSQLUserRepository handles user persistence for PostgreSQL
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{
		db: db,
	}
}

// Create inserts a new user and its role grants
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, document, name, last_name, username, password, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := querier.ExecContext(
		ctx,
		query,
		user.ID,
		user.Document,
		user.Name,
		user.LastName,
		user.Username,
		user.Password,
		user.Status,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}

	return r.insertPermissions(ctx, querier, user.ID, user.Roles)
}

// Update stores the mutable fields of a user and replaces its role grants
func (r *PostgreSQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET name = $1, last_name = $2, status = $3, updated_at = $4
			  WHERE id = $5 AND status <> $6`

	result, err := querier.ExecContext(
		ctx, query, user.Name, user.LastName, user.Status, user.UpdatedAt, user.ID, domain.StatusDeleted,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user")
	}
	if err := requireAffected(result, "failed to update user"); err != nil {
		return err
	}

	if _, err := querier.ExecContext(ctx, `DELETE FROM permissions WHERE user_id = $1`, user.ID); err != nil {
		return apperrors.Wrap(err, "failed to clear user roles")
	}

	return r.insertPermissions(ctx, querier, user.ID, user.Roles)
}

// GetByID retrieves a live user by ID, roles included
func (r *PostgreSQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, document, name, last_name, username, password, status, created_at, updated_at
			  FROM users WHERE id = $1 AND status <> $2`

	user, err := scanUser(querier.QueryRowContext(ctx, query, id, domain.StatusDeleted))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by id")
	}

	if user.Roles, err = r.getRoles(ctx, querier, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByUsername retrieves a live user by its upper-cased username, roles included
func (r *PostgreSQLUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, document, name, last_name, username, password, status, created_at, updated_at
			  FROM users WHERE username = $1 AND status <> $2`

	user, err := scanUser(querier.QueryRowContext(ctx, query, username, domain.StatusDeleted))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by username")
	}

	if user.Roles, err = r.getRoles(ctx, querier, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// ExistsByDocumentOrUsername reports whether a live user already uses document or username
func (r *PostgreSQLUserRepository) ExistsByDocumentOrUsername(
	ctx context.Context,
	document, username string,
) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS (SELECT 1 FROM users WHERE (document = $1 OR username = $2) AND status <> $3)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, document, username, domain.StatusDeleted).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check user existence")
	}
	return exists, nil
}

// List returns live users ordered by username, roles included
func (r *PostgreSQLUserRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, document, name, last_name, username, password, status, created_at, updated_at
			  FROM users WHERE status <> $1 ORDER BY username LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, domain.StatusDeleted, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer func() { _ = rows.Close() }()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate users")
	}

	for _, user := range users {
		if user.Roles, err = r.getRoles(ctx, querier, user.ID); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// UpdatePassword replaces the password hash of a live user
func (r *PostgreSQLUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2 AND status <> $3`

	result, err := querier.ExecContext(ctx, query, passwordHash, id, domain.StatusDeleted)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user password")
	}
	return requireAffected(result, "failed to update user password")
}

// SoftDelete marks a live user as deleted
func (r *PostgreSQLUserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET status = $1, updated_at = NOW() WHERE id = $2 AND status <> $1`

	result, err := querier.ExecContext(ctx, query, domain.StatusDeleted, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete user")
	}
	return requireAffected(result, "failed to delete user")
}

func (r *PostgreSQLUserRepository) insertPermissions(
	ctx context.Context,
	querier database.Querier,
	userID uuid.UUID,
	roles []domain.Role,
) error {
	for _, role := range roles {
		_, err := querier.ExecContext(
			ctx,
			`INSERT INTO permissions (user_id, role_id) VALUES ($1, $2)`,
			userID,
			role.ID,
		)
		if err != nil {
			return apperrors.Wrap(err, "failed to grant user role")
		}
	}
	return nil
}

func (r *PostgreSQLUserRepository) getRoles(
	ctx context.Context,
	querier database.Querier,
	userID uuid.UUID,
) ([]domain.Role, error) {
	query := `SELECT r.id, r.name, r.description, r.created_at
			  FROM roles r INNER JOIN permissions p ON p.role_id = r.id
			  WHERE p.user_id = $1 ORDER BY r.name`

	rows, err := querier.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get user roles")
	}
	defer func() { _ = rows.Close() }()

	roles := make([]domain.Role, 0)
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user role")
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate user roles")
	}
	return roles, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Document,
		&user.Name,
		&user.LastName,
		&user.Username,
		&user.Password,
		&user.Status,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// requireAffected maps a zero row count to ErrUserNotFound.
func requireAffected(result sql.Result, message string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, message)
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
