package account

import (
	"errors"

	"github.com/amirasaad/atm/pkg/domain/money"
)

// TargetNumberLength is the exact number of digits an account number must have
// to be opened implicitly as a transfer target.
const TargetNumberLength = 10

var (
	// ErrAccountNotFound is returned when an account cannot be found.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidAmount is returned when a transaction amount is not positive or not a number.
	ErrInvalidAmount = money.ErrInvalidAmount

	// ErrInsufficientFunds is returned when an account has insufficient funds for a withdrawal or transfer.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAccountFormat is returned when a new transfer target is not a 10-digit number.
	ErrInvalidAccountFormat = errors.New("invalid receiver account number")

	// ErrCannotTransferToSameAccount is returned when a transfer is attempted from an account to itself.
	ErrCannotTransferToSameAccount = errors.New("cannot transfer to same account")

	// ErrAccountExists is returned when seeding an account number twice.
	ErrAccountExists = errors.New("account already exists")

	// ErrNegativeBalance is returned when seeding an account below zero.
	ErrNegativeBalance = errors.New("account balance cannot be negative")

	// ErrEmptyNumber is returned for a blank account number.
	ErrEmptyNumber = errors.New("account number is required")
)

// Account is an account number and its balance.
//
// Invariants:
//   - Number is never empty.
//   - The balance can never be negative after a completed operation.
type Account struct {
	Number  string      `json:"number"`
	Balance money.Money `json:"balance"`
}

// New builds a seeded account after checking its invariants.
func New(number string, balance money.Money) (Account, error) {
	if number == "" {
		return Account{}, ErrEmptyNumber
	}
	if balance.IsNegative() {
		return Account{}, ErrNegativeBalance
	}
	return Account{Number: number, Balance: balance}, nil
}

// IsValidTargetNumber reports whether number may be opened implicitly by a transfer:
// exactly TargetNumberLength ASCII digits.
func IsValidTargetNumber(number string) bool {
	if len(number) != TargetNumberLength {
		return false
	}
	for i := 0; i < len(number); i++ {
		if number[i] < '0' || number[i] > '9' {
			return false
		}
	}
	return true
}

func validateAmount(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// ValidateDeposit checks all business invariants for a deposit operation.
func (a *Account) ValidateDeposit(amount money.Money) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	_, err := a.Balance.Add(amount)
	return err
}

// ValidateWithdraw checks that amount is positive and covered by the balance.
func (a *Account) ValidateWithdraw(amount money.Money) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// ValidateTransfer ensures that a funds transfer from this account to dest is valid.
// dest may be nil when the target does not exist yet; the caller decides whether it
// can be opened.
func (a *Account) ValidateTransfer(dest *Account, amount money.Money) error {
	if err := a.ValidateWithdraw(amount); err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	if a.Number == dest.Number {
		return ErrCannotTransferToSameAccount
	}
	return dest.ValidateDeposit(amount)
}

// Deposit adds amount to the balance and returns the new balance.
func (a *Account) Deposit(amount money.Money) (money.Money, error) {
	if err := a.ValidateDeposit(amount); err != nil {
		return a.Balance, err
	}
	a.Balance, _ = a.Balance.Add(amount)
	return a.Balance, nil
}

// Withdraw removes amount from the balance and returns the new balance.
func (a *Account) Withdraw(amount money.Money) (money.Money, error) {
	if err := a.ValidateWithdraw(amount); err != nil {
		return a.Balance, err
	}
	a.Balance, _ = a.Balance.Subtract(amount)
	return a.Balance, nil
}
