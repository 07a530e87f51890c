package database

import (
	"fmt"
	"time"

	"qbank/internal/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // Oracle driver
	"go.uber.org/zap"
)

// DriverName is the database/sql name registered by go-ora.
const DriverName = "oracle"

func NewSQLXOracleDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Oracle database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping Oracle database: %w", err)
	}

	logger.Get().Info("Successfully connected to Oracle database")
	return db, nil
}

// Close releases the pool and logs instead of returning the error.
func Close(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		logger.Get().Warn("failed to close database", zap.Error(err))
	}
}
