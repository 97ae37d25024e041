// Package db holds the Postgres connection and the repositories for guilds,
// interactions, and usage records.
package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	// registers the postgres driver with database/sql
	_ "github.com/lib/pq"
)

// NewConnection opens a Postgres pool from the connection URL and verifies
// it with a ping before any repository is built on top of it.
func NewConnection(databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
