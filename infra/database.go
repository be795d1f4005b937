package infra

import (
	"errors"
	"fmt"
	"time"

	"github.com/amirasaad/atm/infra/repository"
	"github.com/amirasaad/atm/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrDatabaseURLNotSet is returned when no connection string is configured.
var ErrDatabaseURLNotSet = errors.New("DATABASE_URL is not set")

// NewDBConnection opens a Postgres connection. SQL is logged in development only.
func NewDBConnection(
	cnf *config.DB,
	appEnv string,
) (*gorm.DB, error) {
	if cnf == nil || cnf.Url == "" {
		return nil, ErrDatabaseURLNotSet
	}

	connection, err := gorm.Open(postgres.Open(cnf.Url), gormConfig(appEnv))
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	return connection, nil
}

// gormConfig translates driver errors into gorm sentinels such as
// gorm.ErrDuplicatedKey so repositories can map them.
func gormConfig(appEnv string) *gorm.Config {
	logMode := logger.Silent
	if appEnv == "development" {
		logMode = logger.Info
	}
	return &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	}
}

// Migrate creates or updates the ATM tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(repository.Models()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
