package repository

import (
	"context"

	"github.com/amirasaad/atm/pkg/domain/journal"
	repo "github.com/amirasaad/atm/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type journalRepository struct {
	db *gorm.DB
}

// NewJournalRepository creates a journal archive backed by db.
func NewJournalRepository(db *gorm.DB) repo.JournalRepository {
	return &journalRepository{db: db}
}

// Archive implements repository.JournalRepository. Each call is stored under a
// fresh session ID.
func (r *journalRepository) Archive(ctx context.Context, entries []journal.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	sessionID := uuid.New()
	rows := make([]JournalEntry, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, JournalEntry{
			ID:         e.ID,
			SessionID:  sessionID,
			Position:   i,
			RecordedAt: e.Time,
			Kind:       string(e.Kind),
			Detail:     e.Detail,
		})
	}
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&rows).Error
	})
}
