package operator

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryGetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "email", "name", "role", "password_hash", "created_at"}).
			AddRow("op-1", "cashier@example.com", "Asha", RoleCashier, "hash", time.Now())

		mock.ExpectQuery("FROM operators").
			WithArgs("cashier@example.com").
			WillReturnRows(rows)

		op, err := repo.GetByEmail(context.Background(), "cashier@example.com")
		require.NoError(t, err)
		require.NotNil(t, op)
		assert.Equal(t, "op-1", op.ID)
	})

	t.Run("unknown email returns nil without error", func(t *testing.T) {
		mock.ExpectQuery("FROM operators").
			WithArgs("nobody@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "role", "password_hash", "created_at"}))

		op, err := repo.GetByEmail(context.Background(), "nobody@example.com")
		assert.NoError(t, err)
		assert.Nil(t, op)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	op := &Operator{
		ID:           "op-1",
		Email:        "cashier@example.com",
		Name:         "Asha",
		Role:         RoleCashier,
		PasswordHash: "hash",
	}

	t.Run("success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("INSERT INTO operators").
			WithArgs("op-1", "cashier@example.com", "Asha", RoleCashier, "hash").
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

		created, err := repo.Create(context.Background(), op)
		require.NoError(t, err)
		assert.Equal(t, now, created.CreatedAt)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO operators").
			WillReturnError(&pq.Error{Code: pgUniqueViolation})

		_, err := repo.Create(context.Background(), op)
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
