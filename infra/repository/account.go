package repository

import (
	"context"
	"fmt"

	"github.com/amirasaad/atm/pkg/domain/account"
	"github.com/amirasaad/atm/pkg/domain/money"
	repo "github.com/amirasaad/atm/pkg/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates an account repository backed by db.
func NewAccountRepository(db *gorm.DB) repo.AccountRepository {
	return &accountRepository{db: db}
}

// List implements repository.AccountRepository.
func (r *accountRepository) List(ctx context.Context) ([]account.Account, error) {
	var rows []Account
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).Order("position").Find(&rows).Error
	}); err != nil {
		return nil, err
	}

	out := make([]account.Account, 0, len(rows))
	for i := range rows {
		a, err := mapModelToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// Save implements repository.AccountRepository. Existing rows are updated in place.
func (r *accountRepository) Save(ctx context.Context, accounts []account.Account) error {
	if len(accounts) == 0 {
		return nil
	}
	rows := make([]Account, 0, len(accounts))
	for i, a := range accounts {
		rows = append(rows, mapDomainToModel(i, a))
	}
	return WrapError(func() error {
		return r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "number"}},
				DoUpdates: clause.AssignmentColumns([]string{"position", "balance", "currency", "updated_at"}),
			}).
			Create(&rows).Error
	})
}

func mapModelToDomain(m *Account) (account.Account, error) {
	if money.Code(m.Currency) != money.USD {
		return account.Account{}, fmt.Errorf("account %s: unsupported currency %q", m.Number, m.Currency)
	}
	return account.New(m.Number, money.NewFromSmallestUnit(m.Balance))
}

func mapDomainToModel(position int, a account.Account) Account {
	return Account{
		Number:   a.Number,
		Position: position,
		Balance:  a.Balance.Amount(),
		Currency: string(a.Balance.Currency()),
	}
}
