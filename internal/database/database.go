package database

import (
	"context"
	"fmt"
	"time"

	"image-judge/internal/config"
	"image-judge/internal/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // pure Go Oracle driver, registered as "oracle"
)

// DriverName maps the configured driver to the registered database/sql name.
func DriverName(driver string) string {
	if driver == "godror" {
		return "godror"
	}
	return "oracle"
}

// NewSQLXOracleDB opens and pings an Oracle connection pool.
func NewSQLXOracleDB(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	driver := DriverName(cfg.DB.Driver)
	db, err := sqlx.Open(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open Oracle database (%s): %w", driver, err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping Oracle database: %w", err)
	}

	logger.Get().Info("Successfully connected to Oracle database")
	return db, nil
}
