package domain

import (
	"github.com/amirasaad/atm/pkg/domain/account"
	"github.com/amirasaad/atm/pkg/domain/journal"
	"github.com/amirasaad/atm/pkg/domain/money"
)

// Domain errors re-exported for the presentation layers, so they can map every
// failure without importing each domain package.
var (
	// ErrAccountNotFound is returned when a queried or source account does not exist.
	ErrAccountNotFound = account.ErrAccountNotFound
	// ErrInvalidAmount is returned for non-positive or non-numeric amounts.
	ErrInvalidAmount = account.ErrInvalidAmount
	// ErrAmountOverflow is returned when a balance would leave the int64 range.
	ErrAmountOverflow = money.ErrAmountOverflow
	// ErrInsufficientFunds is returned when a withdrawal or transfer exceeds the balance.
	ErrInsufficientFunds = account.ErrInsufficientFunds
	// ErrInvalidAccountFormat is returned for a malformed new transfer target.
	ErrInvalidAccountFormat = account.ErrInvalidAccountFormat
	// ErrCannotTransferToSameAccount is returned when source and target are equal.
	ErrCannotTransferToSameAccount = account.ErrCannotTransferToSameAccount
	// ErrEmptyLog is returned when a receipt is rendered with no entries.
	ErrEmptyLog = journal.ErrEmptyLog
	// ErrIOFailure is returned when the receipt cannot be persisted.
	ErrIOFailure = journal.ErrIOFailure
)
