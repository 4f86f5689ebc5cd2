package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tair/pos-backoffice/pkg/config"
	"github.com/tair/pos-backoffice/pkg/logger"
)

// NewPostgresConnection opens a lib/pq connection pool and verifies it
func NewPostgresConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	if cfg.ConnMaxLifetime == 0 {
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Logger.Info().
		Str("host", cfg.Host).
		Str("database", cfg.Name).
		Msg("Successfully connected to PostgreSQL database")
	return db, nil
}

// NowUTC stamps created_at/updated_at so that day buckets are UTC calendar days
func NowUTC() time.Time {
	return time.Now().UTC()
}

// NewGormConnection returns a gorm handle for the configured driver. Postgres runs on
// the lib/pq pool from NewPostgresConnection; sqlite is meant for local runs.
func NewGormConnection(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
		NowFunc:        NowUTC,
	}

	switch cfg.Driver {
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(cfg.Name), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database instance: %w", err)
		}
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	default:
		sqlDB, err := NewPostgresConnection(cfg)
		if err != nil {
			return nil, err
		}
		db, err := gorm.Open(postgres.New(postgres.Config{
			Conn:       sqlDB,
			DriverName: "postgres",
		}), gormConfig)
		if err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to open gorm session: %w", err)
		}
		return db, nil
	}
}
