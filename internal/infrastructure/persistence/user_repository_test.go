package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/procure/backend/internal/domain/identity"
	"github.com/procure/backend/internal/domain/shared"
)

// newMockUserRepository creates a GormUserRepository with a mocked SQL connection
func newMockUserRepository(t *testing.T) (*GormUserRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	return NewGormUserRepository(gormDB), mock, mockDB
}

func TestGormUserRepository_FindByEmail(t *testing.T) {
	t.Run("matches case-insensitively", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		userID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "email_address", "role", "status"}).
			AddRow(userID, "Dana", "dana@example.com", int(identity.RoleAdmin), string(identity.UserStatusApproved))

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE LOWER\(email_address\) = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("dana@example.com", 1).
			WillReturnRows(rows)

		user, err := repo.FindByEmail(context.Background(), "Dana@Example.COM")

		assert.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, identity.RoleAdmin, user.Role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for unknown email", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE LOWER\(email_address\) = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("nobody@example.com", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.FindByEmail(context.Background(), "nobody@example.com")

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_FindByStatus(t *testing.T) {
	t.Run("lists pending users oldest first", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "name", "email_address", "role", "status"}).
			AddRow(uuid.New(), "First", "first@example.com", int(identity.RoleOwner), string(identity.UserStatusPending)).
			AddRow(uuid.New(), "Second", "second@example.com", int(identity.RoleOwner), string(identity.UserStatusPending))

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE status = \$1 ORDER BY created_at ASC`).
			WithArgs(string(identity.UserStatusPending)).
			WillReturnRows(rows)

		users, err := repo.FindByStatus(context.Background(), identity.UserStatusPending)

		assert.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "First", users[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_Save(t *testing.T) {
	t.Run("maps a duplicate email to ErrDuplicateKey", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		user := &identity.User{
			BaseAggregateRoot: shared.NewBaseAggregateRoot(),
			Name:              "Dana",
			EmailAddress:      "dana@example.com",
		}

		mock.ExpectExec(`UPDATE "users" SET`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "idx_users_email_address"})

		err := repo.Save(context.Background(), user)

		assert.Equal(t, shared.ErrDuplicateKey, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_Delete(t *testing.T) {
	t.Run("returns ErrNotFound when no row matched", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		userID := uuid.New()

		mock.ExpectExec(`DELETE FROM "users" WHERE id = \$1`).
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), userID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
