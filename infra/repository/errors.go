package repository

import (
	"errors"
	"fmt"

	"github.com/amirasaad/atm/pkg/domain/account"
	repo "github.com/amirasaad/atm/pkg/repository"
	"gorm.io/gorm"
)

// MapGormErrorToDomain converts GORM errors to domain errors.
// Traverses the error chain to find GORM errors and maps them to appropriate domain errors.
// Key conflicts only surface as gorm.ErrDuplicatedKey when the connection sets
// gorm.Config.TranslateError.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}

	currentErr := err
	for currentErr != nil {
		switch {
		case errors.Is(currentErr, gorm.ErrDuplicatedKey):
			return fmt.Errorf("%w: %w", repo.ErrDuplicateRecord, err)
		case errors.Is(currentErr, gorm.ErrRecordNotFound):
			return account.ErrAccountNotFound
		}
		currentErr = errors.Unwrap(currentErr)
	}

	return err
}

// WrapError wraps a GORM operation and automatically maps errors.
//
// Usage:
//
//	err := WrapError(func() error {
//	    return r.db.WithContext(ctx).Create(&rows).Error
//	})
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}
