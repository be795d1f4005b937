package accounts

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amirasaad/atm/pkg/domain/account"
	"github.com/amirasaad/atm/pkg/domain/money"
)

//go:embed accounts.csv
var accountsCSV string

// LoadCSV loads seed accounts from a CSV file or the embedded demo accounts.
// If path is empty, it uses the embedded CSV content.
func LoadCSV(path string) ([]account.Account, error) {
	var r io.Reader

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		r = f
	} else {
		r = strings.NewReader(accountsCSV)
	}

	return parseCSV(r)
}

func parseCSV(r io.Reader) ([]account.Account, error) {
	csvReader := csv.NewReader(r)
	csvReader.TrimLeadingSpace = true
	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, err
	}

	var out []account.Account
	for i, rec := range records {
		if i == 0 {
			if len(rec) < 2 {
				return nil, errors.New("invalid CSV format: expected account_number,balance header")
			}
			continue // skip header
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("line %d: expected 2 columns, got %d", i+1, len(rec))
		}

		bal, err := money.Parse(rec[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		a, err := account.New(strings.TrimSpace(rec[0]), bal)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		out = append(out, a)
	}
	return out, nil
}
