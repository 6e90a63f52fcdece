package db

import (
	"github.com/jmoiron/sqlx"

	libdb "evcharge/backend/libs/db"
)

// NewPostgres connects to Postgres using shared library helper and wraps the pool for sqlx.
func NewPostgres(dsn string) (*sqlx.DB, error) {
	sqlDB, err := libdb.NewPostgresDB(dsn)
	if err != nil {
		return nil, err
	}
	return sqlx.NewDb(sqlDB, libdb.DriverName), nil
}
