package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/atm/pkg/domain/account"
	"github.com/amirasaad/atm/pkg/domain/journal"
	"github.com/amirasaad/atm/pkg/domain/money"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })

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

func TestAccountRepository_List(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"number", "position", "balance", "currency", "created_at", "updated_at"}).
		AddRow("112211", 0, 100000, "USD", now, now).
		AddRow("1122334455", 1, 50000, "USD", now, now)
	mock.ExpectQuery(`SELECT \* FROM "atm_accounts" ORDER BY position`).WillReturnRows(rows)

	got, err := repo.List(context.Background())
	require.NoError(err)
	require.Len(got, 2)
	assert.Equal("112211", got[0].Number)
	assert.Equal("1000.00", got[0].Balance.String())
	assert.Equal("1122334455", got[1].Number)
	assert.Equal("500.00", got[1].Balance.String())
	require.NoError(mock.ExpectationsWereMet())
}

func TestAccountRepository_List_Errors(t *testing.T) {
	t.Run("query error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccountRepository(db)
		mock.ExpectQuery(`SELECT \* FROM "atm_accounts"`).WillReturnError(errors.New("connection refused"))

		_, err := repo.List(context.Background())
		assert.Error(t, err)
	})

	t.Run("unsupported currency", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccountRepository(db)
		rows := sqlmock.NewRows([]string{"number", "position", "balance", "currency"}).
			AddRow("112211", 0, 100, "EUR")
		mock.ExpectQuery(`SELECT \* FROM "atm_accounts"`).WillReturnRows(rows)

		_, err := repo.List(context.Background())
		assert.ErrorContains(t, err, "unsupported currency")
	})

	t.Run("negative balance", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccountRepository(db)
		rows := sqlmock.NewRows([]string{"number", "position", "balance", "currency"}).
			AddRow("112211", 0, -1, "USD")
		mock.ExpectQuery(`SELECT \* FROM "atm_accounts"`).WillReturnRows(rows)

		_, err := repo.List(context.Background())
		assert.ErrorIs(t, err, account.ErrNegativeBalance)
	})
}

func TestAccountRepository_Save(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	a, err := account.New("112211", money.MustParse("750.00"))
	require.NoError(err)
	b, err := account.New("1122334455", money.MustParse("500.00"))
	require.NoError(err)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "atm_accounts" (.+) VALUES (.+) ON CONFLICT \("number"\) DO UPDATE SET (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(repo.Save(context.Background(), []account.Account{a, b}))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "atm_accounts" (.+) VALUES (.+)`).
		WillReturnError(errors.New("save error"))
	mock.ExpectRollback()

	require.Error(repo.Save(context.Background(), []account.Account{a}))
	require.NoError(mock.ExpectationsWereMet())
}

func TestAccountRepository_Save_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	require.NoError(t, repo.Save(context.Background(), nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalRepository_Archive(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := NewJournalRepository(db)

	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	entries := []journal.Entry{
		{ID: uuid.New(), Time: now, Kind: journal.KindDeposit, Detail: "Account 112211 deposited $250.00"},
		{ID: uuid.New(), Time: now, Kind: journal.KindTransfer, Detail: "From 112211 to 1122334455: $500.00"},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "atm_journal_entries" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(repo.Archive(context.Background(), entries))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "atm_journal_entries" (.+) VALUES (.+)`).
		WillReturnError(errors.New("archive error"))
	mock.ExpectRollback()

	require.Error(repo.Archive(context.Background(), entries))
	require.NoError(mock.ExpectationsWereMet())
}

func TestJournalRepository_Archive_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewJournalRepository(db)

	require.NoError(t, repo.Archive(context.Background(), []journal.Entry{}))
	require.NoError(t, mock.ExpectationsWereMet())
}
