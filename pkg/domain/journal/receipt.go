package journal

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/amirasaad/atm/pkg/domain/account"
)

var (
	// ErrEmptyLog is returned when a receipt is requested before anything was recorded.
	ErrEmptyLog = errors.New("no transactions recorded")
	// ErrIOFailure is returned when the receipt cannot be written.
	ErrIOFailure = errors.New("receipt could not be saved")
)

const (
	ruleHeavy = "==============================="
	ruleLight = "-------------------------------"
)

// RenderReceipt formats the whole log and the final balances as an ATM slip.
// The output depends only on its inputs, so rendering the same state twice is
// byte-identical.
func (l *Log) RenderReceipt(generatedAt time.Time, balances []account.Account) (string, error) {
	if l.IsEmpty() {
		return "", ErrEmptyLog
	}

	var b strings.Builder
	lines := []string{
		ruleHeavy,
		"        ATM RECEIPT SLIP",
		ruleHeavy,
		"DATE: " + generatedAt.Format(TimeLayout),
		ruleLight,
		"TRANSACTIONS:",
	}
	for _, e := range l.entries {
		lines = append(lines, "  "+e.String())
	}
	lines = append(lines, ruleLight, "FINAL BALANCES:")
	for _, a := range balances {
		lines = append(lines, fmt.Sprintf("  Account %-12s | $%8s", a.Number, a.Balance.String()))
	}
	lines = append(lines,
		ruleHeavy,
		"  THANK YOU FOR USING OUR ATM",
		ruleHeavy,
	)
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// Persist writes text to path, replacing any previous receipt. The file is
// always closed, and any failure is reported as ErrIOFailure.
func Persist(text, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrIOFailure, closeErr)
		}
	}()

	if _, err = f.WriteString(text); err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return nil
}
