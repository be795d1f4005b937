package repository

import (
	"time"

	"github.com/google/uuid"
)

// Account is a seed account row. Position keeps the seed order.
type Account struct {
	Number    string `gorm:"primaryKey;type:varchar(32)"`
	Position  int    `gorm:"not null;index"`
	Balance   int64  `gorm:"not null"`
	Currency  string `gorm:"type:varchar(3);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "atm_accounts"
}

// JournalEntry is one archived transaction log line.
type JournalEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Position   int       `gorm:"not null"`
	RecordedAt time.Time `gorm:"not null;index"`
	Kind       string    `gorm:"type:varchar(32);not null"`
	Detail     string    `gorm:"type:text;not null"`
	CreatedAt  time.Time
}

// TableName specifies the table name for the JournalEntry model.
func (JournalEntry) TableName() string {
	return "atm_journal_entries"
}

// Models lists every table the ATM stores, in migration order.
func Models() []any {
	return []any{&Account{}, &JournalEntry{}}
}
