package infra

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/atm/infra/repository"
	"github.com/amirasaad/atm/pkg/config"
	"github.com/amirasaad/atm/pkg/domain/journal"
	repo "github.com/amirasaad/atm/pkg/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestNewDBConnection_RequiresURL(t *testing.T) {
	_, err := NewDBConnection(nil, "test")
	assert.ErrorIs(t, err, ErrDatabaseURLNotSet)

	_, err = NewDBConnection(&config.DB{}, "development")
	assert.ErrorIs(t, err, ErrDatabaseURLNotSet)
}

func TestGormConfig(t *testing.T) {
	cfg := gormConfig("production")
	assert.True(t, cfg.TranslateError)
	assert.True(t, cfg.SkipDefaultTransaction)
}

func TestGormConfig_UniqueViolationMapsToDuplicateRecord(t *testing.T) {
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	}), gormConfig("test"))
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO "atm_journal_entries" (.+) VALUES (.+)`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	entries := []journal.Entry{
		{ID: uuid.New(), Time: time.Now(), Kind: journal.KindDeposit, Detail: "Account 112211 deposited $250.00"},
	}
	err = repository.NewJournalRepository(db).Archive(context.Background(), entries)
	assert.ErrorIs(t, err, repo.ErrDuplicateRecord)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	require.NoError(t, mock.ExpectationsWereMet())
}
