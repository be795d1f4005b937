package money

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Amount represents a monetary amount as an integer in the smallest currency unit (cents).
type Amount = int64

// Code is an ISO 4217 currency code.
type Code string

const (
	// USD is the only currency the ATM dispenses.
	USD Code = "USD"
	// Decimals is the number of minor-unit digits for USD.
	Decimals = 2
	// Symbol is printed in front of display amounts.
	Symbol = "$"
)

var (
	// ErrInvalidAmount is returned when an amount is non-numeric, over-precise or not positive.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrAmountOverflow is returned when arithmetic would exceed the int64 range.
	ErrAmountOverflow = errors.New("amount exceeds maximum safe integer value")
)

var amountPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d{0,2})?|\.\d{1,2})$`)

// Money represents a monetary value in a specific currency.
// Invariants:
//   - Amount is always stored in the smallest currency unit (cents).
//   - Arithmetic never goes through floating point.
type Money struct {
	amount   Amount
	currency Code
}

// Zero returns a zero USD amount.
func Zero() Money {
	return Money{currency: USD}
}

// NewFromSmallestUnit creates Money from an amount in cents.
func NewFromSmallestUnit(amount int64) Money {
	return Money{amount: amount, currency: USD}
}

// Parse converts user input such as "250", "250.5" or "$1,250.00" into Money.
// Input with more than two decimal places or anything that is not a plain decimal
// number fails with ErrInvalidAmount. Sign is preserved; positivity is a ledger rule.
func Parse(s string) (Money, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimPrefix(raw, Symbol)
	raw = strings.ReplaceAll(raw, ",", "")
	if !amountPattern.MatchString(raw) {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	sign := ""
	if raw[0] == '-' || raw[0] == '+' {
		sign, raw = raw[:1], raw[1:]
	}
	whole, frac, _ := strings.Cut(raw, ".")
	if whole == "" {
		whole = "0"
	}
	frac += strings.Repeat("0", Decimals-len(frac))
	n, err := strconv.ParseInt(sign+whole+frac, 10, 64)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %w", ErrInvalidAmount, ErrAmountOverflow)
	}
	return NewFromSmallestUnit(n), nil
}

// MustParse is Parse for constants and tests. It panics on invalid input.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Amount returns the amount in cents.
func (m Money) Amount() Amount {
	return m.amount
}

// Currency returns the currency code, defaulting to USD for the zero value.
func (m Money) Currency() Code {
	if m.currency == "" {
		return USD
	}
	return m.currency
}

// Add returns m + other or ErrAmountOverflow.
func (m Money) Add(other Money) (Money, error) {
	if (other.amount > 0 && m.amount > math.MaxInt64-other.amount) ||
		(other.amount < 0 && m.amount < math.MinInt64-other.amount) {
		return Money{}, ErrAmountOverflow
	}
	return Money{amount: m.amount + other.amount, currency: m.Currency()}, nil
}

// Subtract returns m - other or ErrAmountOverflow.
func (m Money) Subtract(other Money) (Money, error) {
	if other.amount == math.MinInt64 {
		return Money{}, ErrAmountOverflow
	}
	return m.Add(other.Negate())
}

// Negate negates the current Money object.
func (m Money) Negate() Money {
	return Money{amount: -m.amount, currency: m.Currency()}
}

// Equals reports whether both values hold the same amount.
func (m Money) Equals(other Money) bool {
	return m.Currency() == other.Currency() && m.amount == other.amount
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.amount < other.amount
}

// IsPositive returns true if the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount > 0
}

// IsNegative returns true if the amount is less than zero.
func (m Money) IsNegative() bool {
	return m.amount < 0
}

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// String formats the amount with two decimals, e.g. "1250.00".
func (m Money) String() string {
	sign := ""
	// work in uint64 so MinInt64 does not overflow on negation
	abs := uint64(m.amount)
	if m.amount < 0 {
		sign = "-"
		abs = uint64(-(m.amount + 1)) + 1
	}
	return fmt.Sprintf("%s%d.%02d", sign, abs/100, abs%100)
}

// Display formats the amount for people, e.g. "$1250.00".
func (m Money) Display() string {
	if m.amount < 0 {
		return "-" + Symbol + m.Negate().String()
	}
	return Symbol + m.String()
}

// MarshalText renders the amount as a decimal string so JSON never carries floats.
func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText parses a decimal string.
func (m *Money) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
