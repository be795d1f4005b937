// Package ledger holds the authoritative mapping of account numbers to balances
// and the validated operations that mutate it.
//
// A Ledger is not safe for concurrent use; the session that owns it serializes calls.
// Every failed operation leaves the ledger exactly as it was.
package ledger

import (
	"fmt"

	"github.com/amirasaad/atm/pkg/domain/account"
	"github.com/amirasaad/atm/pkg/domain/money"
)

// Ledger maps account numbers to accounts and remembers the order in which
// each account first appeared.
type Ledger struct {
	accounts map[string]*account.Account
	order    []string
}

// New creates a ledger seeded with the given accounts, in order.
func New(seed ...account.Account) (*Ledger, error) {
	l := &Ledger{accounts: make(map[string]*account.Account, len(seed))}
	for _, a := range seed {
		if err := l.Open(a.Number, a.Balance); err != nil {
			return nil, fmt.Errorf("seed account %q: %w", a.Number, err)
		}
	}
	return l, nil
}

// Open adds an account with a starting balance.
func (l *Ledger) Open(number string, balance money.Money) error {
	a, err := account.New(number, balance)
	if err != nil {
		return err
	}
	if _, ok := l.accounts[number]; ok {
		return account.ErrAccountExists
	}
	l.put(&a)
	return nil
}

func (l *Ledger) put(a *account.Account) {
	l.accounts[a.Number] = a
	l.order = append(l.order, a.Number)
}

func (l *Ledger) get(number string) (*account.Account, error) {
	a, ok := l.accounts[number]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	return a, nil
}

// Has reports whether number is a known account.
func (l *Ledger) Has(number string) bool {
	_, ok := l.accounts[number]
	return ok
}

// Len returns the number of accounts.
func (l *Ledger) Len() int {
	return len(l.order)
}

// BalanceOf returns the balance of an account.
func (l *Ledger) BalanceOf(number string) (money.Money, error) {
	a, err := l.get(number)
	if err != nil {
		return money.Money{}, err
	}
	return a.Balance, nil
}

// Deposit credits amount to an account and returns its new balance.
func (l *Ledger) Deposit(number string, amount money.Money) (money.Money, error) {
	a, err := l.get(number)
	if err != nil {
		return money.Money{}, err
	}
	return a.Deposit(amount)
}

// Withdraw debits amount from an account and returns its new balance.
func (l *Ledger) Withdraw(number string, amount money.Money) (money.Money, error) {
	a, err := l.get(number)
	if err != nil {
		return money.Money{}, err
	}
	return a.Withdraw(amount)
}

// Transfer moves amount from one account to another and returns both new balances.
// An unknown target is opened with a zero balance when its number is exactly ten
// digits; otherwise the transfer fails with account.ErrInvalidAccountFormat.
// Nothing is created or changed unless the whole transfer succeeds.
func (l *Ledger) Transfer(from, to string, amount money.Money) (fromBalance, toBalance money.Money, err error) {
	src, err := l.get(from)
	if err != nil {
		return money.Money{}, money.Money{}, err
	}
	dst := l.accounts[to]
	if err = src.ValidateTransfer(dst, amount); err != nil {
		return money.Money{}, money.Money{}, err
	}
	if dst == nil {
		if !account.IsValidTargetNumber(to) {
			return money.Money{}, money.Money{}, account.ErrInvalidAccountFormat
		}
		dst = &account.Account{Number: to, Balance: money.Zero()}
		l.put(dst)
	}

	// both sides were validated, so neither call can fail
	fromBalance, _ = src.Withdraw(amount)
	toBalance, _ = dst.Deposit(amount)
	return fromBalance, toBalance, nil
}

// Balances returns a snapshot of every account in order of first appearance.
func (l *Ledger) Balances() []account.Account {
	out := make([]account.Account, 0, len(l.order))
	for _, n := range l.order {
		out = append(out, *l.accounts[n])
	}
	return out
}

// Total returns the sum of all balances.
func (l *Ledger) Total() (money.Money, error) {
	total := money.Zero()
	for _, n := range l.order {
		var err error
		if total, err = total.Add(l.accounts[n].Balance); err != nil {
			return money.Money{}, err
		}
	}
	return total, nil
}
