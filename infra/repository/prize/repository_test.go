package prize

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

// The claim guard lives in the UPDATE's WHERE clause. A prize already
// claimed matches no row, so a second claim can never pay out again.
func TestRepository_MarkClaimed(t *testing.T) {
	prizeID := uuid.New()

	t.Run("unclaimed prize", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := New(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "prizes" SET (.+) WHERE id = (.+) AND status = (.+)`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.MarkClaimed(context.Background(), prizeID)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already claimed affects no rows", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := New(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "prizes" SET (.+) WHERE id = (.+) AND status = (.+)`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.MarkClaimed(context.Background(), prizeID)
		assert.ErrorIs(t, err, domain.ErrPrizeAlreadyClaimed)
	})
}

func TestRepository_CreateMany(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)

	creates := []*dto.PrizeCreate{
		{ID: uuid.New(), PrizeDescription: "ending prize", PrizeAmount: 200000, WinningTicketID: uuid.New(), Status: "unclaimed"},
		{ID: uuid.New(), PrizeDescription: "ending prize", PrizeAmount: 200000, WinningTicketID: uuid.New(), Status: "unclaimed"},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "prizes" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	count, err := repo.CreateMany(context.Background(), creates)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRepository_CreateMany_Empty(t *testing.T) {
	db, _ := newMockDB(t)
	repo := New(db)

	count, err := repo.CreateMany(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRepository_WinningTicketTaken(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "prizes" WHERE winning_ticket_id = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	taken, err := repo.WinningTicketTaken(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.True(t, taken)
}
