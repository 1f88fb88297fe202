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

// MySQLUserRepository handles user persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{
		db: db,
	}
}

// Create inserts a new user and its role grants
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	uuidBytes, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `INSERT INTO users (id, document, name, last_name, username, password, status, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		uuidBytes,
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
		if isMySQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}

	return r.insertPermissions(ctx, querier, uuidBytes, user.Roles)
}

// Update stores the mutable fields of a user and replaces its role grants
func (r *MySQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	uuidBytes, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `UPDATE users SET name = ?, last_name = ?, status = ?, updated_at = ?
			  WHERE id = ? AND status <> ?`

	result, err := querier.ExecContext(
		ctx, query, user.Name, user.LastName, user.Status, user.UpdatedAt, uuidBytes, domain.StatusDeleted,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user")
	}
	if err := requireAffected(result, "failed to update user"); err != nil {
		return err
	}

	if _, err := querier.ExecContext(ctx, `DELETE FROM permissions WHERE user_id = ?`, uuidBytes); err != nil {
		return apperrors.Wrap(err, "failed to clear user roles")
	}

	return r.insertPermissions(ctx, querier, uuidBytes, user.Roles)
}

// GetByID retrieves a live user by ID, roles included
func (r *MySQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `SELECT id, document, name, last_name, username, password, status, created_at, updated_at
			  FROM users WHERE id = ? AND status <> ?`

	user, err := scanMySQLUser(querier.QueryRowContext(ctx, query, uuidBytes, domain.StatusDeleted))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by id")
	}

	if user.Roles, err = r.getRoles(ctx, querier, uuidBytes); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByUsername retrieves a live user by its upper-cased username, roles included
func (r *MySQLUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, document, name, last_name, username, password, status, created_at, updated_at
			  FROM users WHERE username = ? AND status <> ?`

	user, err := scanMySQLUser(querier.QueryRowContext(ctx, query, username, domain.StatusDeleted))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by username")
	}

	uuidBytes, err := user.ID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}
	if user.Roles, err = r.getRoles(ctx, querier, uuidBytes); err != nil {
		return nil, err
	}
	return user, nil
}

// ExistsByDocumentOrUsername reports whether a live user already uses document or username
func (r *MySQLUserRepository) ExistsByDocumentOrUsername(
	ctx context.Context,
	document, username string,
) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS (SELECT 1 FROM users WHERE (document = ? OR username = ?) AND status <> ?)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, document, username, domain.StatusDeleted).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check user existence")
	}
	return exists, nil
}

// List returns live users ordered by username, roles included
func (r *MySQLUserRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, document, name, last_name, username, password, status, created_at, updated_at
			  FROM users WHERE status <> ? ORDER BY username LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, domain.StatusDeleted, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer func() { _ = rows.Close() }()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanMySQLUser(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate users")
	}

	for _, user := range users {
		uuidBytes, err := user.ID.MarshalBinary()
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to marshal UUID")
		}
		if user.Roles, err = r.getRoles(ctx, querier, uuidBytes); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// UpdatePassword replaces the password hash of a live user
func (r *MySQLUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	querier := database.GetTx(ctx, r.db)

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `UPDATE users SET password = ?, updated_at = NOW() WHERE id = ? AND status <> ?`

	result, err := querier.ExecContext(ctx, query, passwordHash, uuidBytes, domain.StatusDeleted)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user password")
	}
	return requireAffected(result, "failed to update user password")
}

// SoftDelete marks a live user as deleted
func (r *MySQLUserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `UPDATE users SET status = ?, updated_at = NOW() WHERE id = ? AND status <> ?`

	result, err := querier.ExecContext(ctx, query, domain.StatusDeleted, uuidBytes, domain.StatusDeleted)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete user")
	}
	return requireAffected(result, "failed to delete user")
}

func (r *MySQLUserRepository) insertPermissions(
	ctx context.Context,
	querier database.Querier,
	userID []byte,
	roles []domain.Role,
) error {
	for _, role := range roles {
		roleBytes, err := role.ID.MarshalBinary()
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal UUID")
		}
		_, err = querier.ExecContext(
			ctx,
			`INSERT INTO permissions (user_id, role_id) VALUES (?, ?)`,
			userID,
			roleBytes,
		)
		if err != nil {
			return apperrors.Wrap(err, "failed to grant user role")
		}
	}
	return nil
}

func (r *MySQLUserRepository) getRoles(
	ctx context.Context,
	querier database.Querier,
	userID []byte,
) ([]domain.Role, error) {
	query := `SELECT r.id, r.name, r.description, r.created_at
			  FROM roles r INNER JOIN permissions p ON p.role_id = r.id
			  WHERE p.user_id = ? ORDER BY r.name`

	rows, err := querier.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get user roles")
	}
	defer func() { _ = rows.Close() }()

	roles := make([]domain.Role, 0)
	for rows.Next() {
		role, err := scanMySQLRole(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user role")
		}
		roles = append(roles, *role)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate user roles")
	}
	return roles, nil
}

func scanMySQLUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	var idBytes []byte
	err := row.Scan(
		&idBytes,
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
	if err := user.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	return &user, nil
}

func scanMySQLRole(row rowScanner) (*domain.Role, error) {
	var role domain.Role
	var idBytes []byte
	if err := row.Scan(&idBytes, &role.Name, &role.Description, &role.CreatedAt); err != nil {
		return nil, err
	}
	if err := role.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	return &role, nil
}
