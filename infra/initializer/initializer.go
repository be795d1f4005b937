package initializer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/amirasaad/atm/infra"
	infra_repository "github.com/amirasaad/atm/infra/repository"
	accountfixtures "github.com/amirasaad/atm/internal/fixtures/accounts"
	"github.com/amirasaad/atm/pkg/app"
	"github.com/amirasaad/atm/pkg/config"
	"github.com/amirasaad/atm/pkg/domain/account"
	"github.com/amirasaad/atm/pkg/domain/ledger"
	"github.com/amirasaad/atm/pkg/repository"
	"gorm.io/gorm"
)

// InitializeDependencies initializes all the application dependencies. Logs go
// to logOut.
func InitializeDependencies(ctx context.Context, cfg *config.App, logOut io.Writer) (
	deps *app.Deps,
	err error,
) {
	logger := SetupLogger(logOut, cfg.Log)

	var db *gorm.DB
	if cfg.NeedsDB() {
		db, err = infra.NewDBConnection(cfg.DB, cfg.Env)
		if err != nil {
			logger.Error("Failed to initialize database", "error", err)
			return nil, err
		}
		if err = infra.Migrate(db); err != nil {
			logger.Error("Failed to migrate database", "error", err)
			return nil, err
		}
	}
	return initialize(ctx, cfg, logger, db)
}

func initialize(ctx context.Context, cfg *config.App, logger *slog.Logger, db *gorm.DB) (*app.Deps, error) {
	deps := &app.Deps{Logger: logger}

	var (
		seed []account.Account
		err  error
	)
	switch cfg.Seed.Source {
	case config.SeedSourceDB:
		store := infra_repository.NewAccountRepository(db)
		seed, err = seedFromDB(ctx, store, cfg.Seed, logger)
		deps.AccountStore = store
	default:
		seed, err = accountfixtures.LoadCSV(cfg.Seed.CSVPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load seed accounts: %w", err)
	}

	deps.Ledger, err = ledger.New(seed...)
	if err != nil {
		return nil, fmt.Errorf("failed to build ledger: %w", err)
	}
	logger.Info("Ledger seeded", "source", cfg.Seed.Source, "accounts", deps.Ledger.Len())

	if cfg.Archive.Enabled {
		deps.Archive = infra_repository.NewJournalRepository(db)
		logger.Info("Journal archive enabled")
	}
	return deps, nil
}

// seedFromDB loads the stored accounts. An empty table is filled from the CSV
// fixtures first.
func seedFromDB(
	ctx context.Context,
	store repository.AccountRepository,
	cfg *config.Seed,
	logger *slog.Logger,
) ([]account.Account, error) {
	seed, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(seed) > 0 {
		logger.Info("Skipping account fixtures load; table not empty", "existing_count", len(seed))
		return seed, nil
	}

	logger.Info("Loading account fixtures into empty table")
	seed, err = accountfixtures.LoadCSV(cfg.CSVPath)
	if err != nil {
		return nil, err
	}
	if err = store.Save(ctx, seed); err != nil {
		return nil, err
	}
	logger.Info("Successfully loaded account fixtures", "registered_count", len(seed))
	return seed, nil
}
