package app

import (
	"log/slog"

	"github.com/amirasaad/atm/pkg/config"
	"github.com/amirasaad/atm/pkg/domain/ledger"
	"github.com/amirasaad/atm/pkg/repository"
	"github.com/amirasaad/atm/pkg/service/atm"
)

// Deps contains the infrastructure an ATM session is built from.
// Archive and AccountStore are nil when the database is not in use.
type Deps struct {
	Ledger       *ledger.Ledger
	Archive      repository.JournalRepository
	AccountStore repository.AccountRepository
	Logger       *slog.Logger
}

// App holds the configured ATM session and what it was built from.
type App struct {
	Deps   *Deps
	Config *config.App
	ATM    *atm.Service
}

// New builds the ATM session from deps and cfg.
func New(deps *Deps, cfg *config.App) *App {
	app := &App{
		Deps:   deps,
		Config: cfg,
	}

	var opts []atm.Option
	if deps.Logger != nil {
		opts = append(opts, atm.WithLogger(deps.Logger))
	}
	if cfg.Receipt != nil {
		opts = append(opts, atm.WithReceiptPath(cfg.Receipt.File))
	}
	if deps.Archive != nil {
		opts = append(opts, atm.WithArchive(deps.Archive))
	}
	if deps.AccountStore != nil {
		opts = append(opts, atm.WithAccountStore(deps.AccountStore))
	}
	app.ATM = atm.New(deps.Ledger, opts...)
	return app
}
