package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lsoftware/inventory/internal/user/domain"
)

func newTestRole(name string) *domain.Role {
	return &domain.Role{
		ID:          uuid.Must(uuid.NewV7()),
		Name:        name,
		Description: name + " role",
		CreatedAt:   time.Date(2022, 5, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestPostgreSQLRoleRepository_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLRoleRepository(db)
		role := newTestRole("ADMIN")

		mock.ExpectExec("INSERT INTO roles").
			WithArgs(role.ID, role.Name, role.Description, role.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Create(context.Background(), role))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate name", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLRoleRepository(db)

		mock.ExpectExec("INSERT INTO roles").WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(context.Background(), newTestRole("ADMIN"))
		assert.ErrorIs(t, err, domain.ErrRoleAlreadyExists)
	})
}

func TestPostgreSQLRoleRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLRoleRepository(db)
	admin := newTestRole("ADMIN")
	user := newTestRole("USER")

	mock.ExpectQuery("FROM roles ORDER BY name").
		WillReturnRows(sqlmock.NewRows(roleColumns).
			AddRow(admin.ID.String(), admin.Name, admin.Description, admin.CreatedAt).
			AddRow(user.ID.String(), user.Name, user.Description, user.CreatedAt))

	roles, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, admin.ID, roles[0].ID)
	assert.Equal(t, "USER", roles[1].Name)
}

func TestPostgreSQLRoleRepository_GetByIDs(t *testing.T) {
	t.Run("empty ids skip the query", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLRoleRepository(db)

		roles, err := repo.GetByIDs(context.Background(), nil)
		assert.NoError(t, err)
		assert.NotNil(t, roles)
		assert.Empty(t, roles)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns matching roles", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLRoleRepository(db)
		admin := newTestRole("ADMIN")

		mock.ExpectQuery("FROM roles WHERE id = ANY").
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(roleColumns).
				AddRow(admin.ID.String(), admin.Name, admin.Description, admin.CreatedAt))

		roles, err := repo.GetByIDs(context.Background(), []uuid.UUID{admin.ID, uuid.Must(uuid.NewV7())})
		require.NoError(t, err)
		require.Len(t, roles, 1)
		assert.Equal(t, admin.ID, roles[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLRoleRepository(db)

		mock.ExpectQuery("FROM roles WHERE id = ANY").WillReturnError(errors.New("timeout"))

		_, err := repo.GetByIDs(context.Background(), []uuid.UUID{uuid.Must(uuid.NewV7())})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get roles by id")
	})
}

func TestMySQLRoleRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLRoleRepository(db)

	mock.ExpectExec("INSERT INTO roles").WillReturnError(&mysql.MySQLError{Number: 1062})

	err := repo.Create(context.Background(), newTestRole("ADMIN"))
	assert.ErrorIs(t, err, domain.ErrRoleAlreadyExists)
}

func TestMySQLRoleRepository_GetByIDs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLRoleRepository(db)
	admin := newTestRole("ADMIN")
	other := uuid.Must(uuid.NewV7())

	mock.ExpectQuery(`FROM roles WHERE id IN \(\?, \?\)`).
		WithArgs(mustBinary(t, admin.ID), mustBinary(t, other)).
		WillReturnRows(sqlmock.NewRows(roleColumns).
			AddRow(mustBinary(t, admin.ID), admin.Name, admin.Description, admin.CreatedAt))

	roles, err := repo.GetByIDs(context.Background(), []uuid.UUID{admin.ID, other})
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, admin.ID, roles[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUniqueViolationDetection(t *testing.T) {
	assert.False(t, isPostgreSQLUniqueViolation(nil))
	assert.True(t, isPostgreSQLUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, isPostgreSQLUniqueViolation(&pq.Error{Code: "23503"}))
	assert.True(t, isPostgreSQLUniqueViolation(errors.New("duplicate key value violates unique constraint")))

	assert.False(t, isMySQLUniqueViolation(nil))
	assert.True(t, isMySQLUniqueViolation(&mysql.MySQLError{Number: 1062}))
	assert.False(t, isMySQLUniqueViolation(&mysql.MySQLError{Number: 1452}))
	assert.True(t, isMySQLUniqueViolation(errors.New("Error 1062: Duplicate entry")))
}
