package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/snnyvrz/library-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultDelayBetweenTry = 2 * time.Second

// ConnectWithRetry opens the sqlite database, pings it and migrates the
// schema. It gives up after attempts tries.
func ConnectWithRetry(dsn string, attempts int) (*gorm.DB, error) {
	return connect(dsn, attempts, defaultDelayBetweenTry)
}

func connect(dsn string, attempts int, delay time.Duration) (*gorm.DB, error) {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		var db *gorm.DB
		db, err = open(dsn)
		if err == nil {
			return db, nil
		}

		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_attempts", attempts).
			Msg("db not ready")

		if attempt < attempts {
			time.Sleep(delay)
		}
	}

	return nil, fmt.Errorf("could not connect to db after %d attempts: %w", attempts, err)
}

func open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// One connection keeps a shared-cache in-memory database alive and
	// avoids "database is locked" between concurrent writers.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	if err := repository.Migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Checker reports whether the database answers pings.
type Checker struct {
	db *gorm.DB
}

func NewChecker(db *gorm.DB) *Checker {
	return &Checker{db: db}
}

func (c *Checker) Ping(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
