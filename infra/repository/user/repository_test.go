package user

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lottohq/lottery/pkg/domain"
	"github.com/lottohq/lottery/pkg/dto"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "users" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), &dto.UserCreate{
		ID:       uuid.New(),
		Username: "alice",
		Email:    "alice@example.com",
		Phone:    "0812345678",
		Password: "hashed",
		Role:     "user",
		Status:   "pending",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Get_NotFoundReturnsNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = (.+) ORDER BY (.+) LIMIT (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	u, err := repo.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, u)
}

// A debit whose balance guard matches no row must fail with
// ErrInsufficientFunds and leave the balance untouched.
func TestRepository_Debit(t *testing.T) {
	id := uuid.New()

	t.Run("sufficient balance", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := New(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "users" SET (.+) WHERE id = (.+) AND money >= (.+)`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Debit(context.Background(), id, 8000)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insufficient balance affects no rows", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := New(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "users" SET (.+) WHERE id = (.+) AND money >= (.+)`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.Debit(context.Background(), id, 8000)
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	})
}

func TestRepository_Credit(t *testing.T) {
	id := uuid.New()

	t.Run("existing user", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := New(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "users" SET (.+) WHERE id = (.+)`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Credit(context.Background(), id, 500000000000)
		require.NoError(t, err)
	})

	t.Run("missing user affects no rows", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := New(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "users" SET (.+) WHERE id = (.+)`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.Credit(context.Background(), id, 100)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestRepository_FieldsTaken_ReportsAllCollisions(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)

	rows := sqlmock.NewRows([]string{"id", "username", "email", "phone"}).
		AddRow(uuid.New(), "alice", "other@example.com", "0000000001").
		AddRow(uuid.New(), "bob", "alice@example.com", "0812345678")
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE`).
		WillReturnRows(rows)

	taken, err := repo.FieldsTaken(
		context.Background(),
		"alice",
		"alice@example.com",
		"0812345678",
		nil,
	)
	require.NoError(t, err)
	assert.True(t, taken.UsernameTaken)
	assert.True(t, taken.EmailTaken)
	assert.True(t, taken.PhoneTaken)
	assert.True(t, taken.Any())
}

func TestRepository_FieldsTaken_EmptyArgsSkipQuery(t *testing.T) {
	db, _ := newMockDB(t)
	repo := New(db)

	taken, err := repo.FieldsTaken(context.Background(), "", "", "", nil)
	require.NoError(t, err)
	assert.False(t, taken.Any())
}
