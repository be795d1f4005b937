// Package atm provides the ATM session: the one owner of a ledger and its
// transaction log. Presentation shells call the Service and decide how to show
// its results; the Service never talks to the user.
//
// Each successful operation records exactly one journal entry. Failed operations
// record nothing and leave balances untouched.
package atm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/amirasaad/atm/pkg/domain/account"
	"github.com/amirasaad/atm/pkg/domain/journal"
	"github.com/amirasaad/atm/pkg/domain/ledger"
	"github.com/amirasaad/atm/pkg/domain/money"
	"github.com/amirasaad/atm/pkg/repository"
)

// DefaultReceiptPath is where Close writes the receipt unless configured otherwise.
const DefaultReceiptPath = "atm_receipt.txt"

// ErrNoTransactions is returned by Receipt and Close when the session recorded nothing.
var ErrNoTransactions = errors.New("no transactions made")

// TransferResult carries both balances after a transfer.
type TransferResult struct {
	From        string      `json:"from"`
	To          string      `json:"to"`
	Amount      money.Money `json:"amount"`
	FromBalance money.Money `json:"from_balance"`
	ToBalance   money.Money `json:"to_balance"`
}

// Service is a single ATM session. Calls are serialized, so shells that run
// handlers concurrently still observe one request at a time.
type Service struct {
	mu          sync.Mutex
	ledger      *ledger.Ledger
	journal     *journal.Log
	logger      *slog.Logger
	receiptPath string
	archive     repository.JournalRepository
	accounts    repository.AccountRepository
	now         func() time.Time
	// archived counts the leading journal entries already handed to archive.
	archived int
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithJournal replaces the session's transaction log.
func WithJournal(j *journal.Log) Option {
	return func(s *Service) {
		s.journal = j
	}
}

// WithReceiptPath sets the file Close writes to.
func WithReceiptPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.receiptPath = path
		}
	}
}

// WithArchive makes Close store the journal through repo.
func WithArchive(repo repository.JournalRepository) Option {
	return func(s *Service) {
		s.archive = repo
	}
}

// WithAccountStore makes Close write the final balances back through repo.
func WithAccountStore(repo repository.AccountRepository) Option {
	return func(s *Service) {
		s.accounts = repo
	}
}

// WithClock sets the clock used to stamp receipts.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a session over l.
func New(l *ledger.Ledger, opts ...Option) *Service {
	s := &Service{
		ledger:      l,
		logger:      slog.Default(),
		receiptPath: DefaultReceiptPath,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.journal == nil {
		s.journal = journal.New(journal.WithClock(s.now))
	}
	return s
}

// CheckBalance returns the balance of number and records a balance check.
func (s *Service) CheckBalance(ctx context.Context, number string) (money.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := s.logger.With("op", "balance", "account", number)
	bal, err := s.ledger.BalanceOf(number)
	if err != nil {
		logger.WarnContext(ctx, "balance check rejected", "error", err)
		return money.Money{}, err
	}
	s.journal.Record(journal.KindBalanceCheck, fmt.Sprintf("Account %s balance %s", number, bal.Display()))
	logger.InfoContext(ctx, "balance checked", "balance", bal.String())
	return bal, nil
}

// Deposit credits amount to number and returns the new balance.
func (s *Service) Deposit(ctx context.Context, number string, amount money.Money) (money.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := s.logger.With("op", "deposit", "account", number, "amount", amount.String())
	bal, err := s.ledger.Deposit(number, amount)
	if err != nil {
		logger.WarnContext(ctx, "deposit rejected", "error", err)
		return money.Money{}, err
	}
	s.journal.Record(journal.KindDeposit, fmt.Sprintf("Account %s deposited %s", number, amount.Display()))
	logger.InfoContext(ctx, "deposit successful", "balance", bal.String())
	return bal, nil
}

// Withdraw debits amount from number and returns the new balance.
func (s *Service) Withdraw(ctx context.Context, number string, amount money.Money) (money.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := s.logger.With("op", "withdraw", "account", number, "amount", amount.String())
	bal, err := s.ledger.Withdraw(number, amount)
	if err != nil {
		logger.WarnContext(ctx, "withdrawal rejected", "error", err)
		return money.Money{}, err
	}
	s.journal.Record(journal.KindWithdraw, fmt.Sprintf("Account %s withdrew %s", number, amount.Display()))
	logger.InfoContext(ctx, "withdrawal successful", "balance", bal.String())
	return bal, nil
}

// Transfer moves amount from one account to another. See ledger.Ledger.Transfer
// for the rules on unknown targets.
func (s *Service) Transfer(ctx context.Context, from, to string, amount money.Money) (TransferResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := s.logger.With("op", "transfer", "from", from, "to", to, "amount", amount.String())
	fromBal, toBal, err := s.ledger.Transfer(from, to, amount)
	if err != nil {
		logger.WarnContext(ctx, "transfer rejected", "error", err)
		return TransferResult{}, err
	}
	s.journal.Record(journal.KindTransfer, fmt.Sprintf("From %s to %s: %s", from, to, amount.Display()))
	logger.InfoContext(ctx, "transfer successful", "from_balance", fromBal.String(), "to_balance", toBal.String())
	return TransferResult{
		From:        from,
		To:          to,
		Amount:      amount,
		FromBalance: fromBal,
		ToBalance:   toBal,
	}, nil
}

// Balances returns every account in order of first appearance.
func (s *Service) Balances(ctx context.Context) []account.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Balances()
}

// Entries returns the journal in chronological order.
func (s *Service) Entries(ctx context.Context) []journal.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.journal.Entries()
}

// Receipt renders the receipt without persisting it.
func (s *Service) Receipt(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.render()
}

func (s *Service) render() (string, error) {
	if s.journal.IsEmpty() {
		return "", ErrNoTransactions
	}
	return s.journal.RenderReceipt(s.now(), s.ledger.Balances())
}

// Close ends the session: it renders the receipt and writes it to the receipt
// path, then stores the journal and the final balances when those stores are
// configured. Only entries recorded since the last successful archive are
// stored, so Close may be called again after further operations. The rendered
// receipt is returned even when a store fails.
func (s *Service) Close(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := s.logger.With("op", "close", "path", s.receiptPath)
	text, err := s.render()
	if err != nil {
		logger.InfoContext(ctx, "session closed without receipt", "error", err)
		return "", err
	}
	if err = journal.Persist(text, s.receiptPath); err != nil {
		logger.ErrorContext(ctx, "receipt not saved", "error", err)
		return text, err
	}
	logger.InfoContext(ctx, "receipt saved", "entries", s.journal.Len())

	if pending := s.journal.Entries()[s.archived:]; s.archive != nil && len(pending) > 0 {
		if err = s.archive.Archive(ctx, pending); err != nil {
			logger.ErrorContext(ctx, "journal archive failed", "error", err)
			return text, fmt.Errorf("archive journal: %w", err)
		}
		s.archived += len(pending)
		logger.InfoContext(ctx, "journal archived", "entries", len(pending))
	}
	if s.accounts != nil {
		if err = s.accounts.Save(ctx, s.ledger.Balances()); err != nil {
			logger.ErrorContext(ctx, "final balances not saved", "error", err)
			return text, fmt.Errorf("save balances: %w", err)
		}
		logger.InfoContext(ctx, "final balances saved", "accounts", s.ledger.Len())
	}
	return text, nil
}

// ReceiptPath returns the file Close writes to.
func (s *Service) ReceiptPath() string {
	return s.receiptPath
}
