package repository

import (
	"context"
	"errors"

	"github.com/amirasaad/atm/pkg/domain/account"
	"github.com/amirasaad/atm/pkg/domain/journal"
)

// ErrDuplicateRecord is returned when a row with the same key is already stored.
var ErrDuplicateRecord = errors.New("record already stored")

// AccountRepository defines the interface for loading seed accounts and storing
// final balances.
type AccountRepository interface {
	// List returns accounts in their seed order.
	List(ctx context.Context) ([]account.Account, error)
	// Save upserts the given balances, keeping their order as the seed order.
	Save(ctx context.Context, accounts []account.Account) error
}

// JournalRepository defines the interface for archiving a session's journal.
type JournalRepository interface {
	Archive(ctx context.Context, entries []journal.Entry) error
}
