// Package db provides an in-memory SQLite scratch database used to
// compare location id sets. Nothing is written to disk.
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const memoryDSN = ":memory:"

type DB struct {
	*sql.DB
}

// openDB opens a SQLite database at the given path
func openDB(dbPath string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)

	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = sqlDB.Close() // Close error less important than PRAGMA error
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return sqlDB, nil
}

// OpenMemory opens a fresh in-memory database with the schema applied.
func OpenMemory() (*DB, error) {
	sqlDB, err := openDB(memoryDSN)
	if err != nil {
		return nil, err
	}

	db := &DB{DB: sqlDB}

	if err := db.InitSchema(); err != nil {
		_ = db.Close() // Close error less important than schema error
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// InitSchema initializes the database schema
func (db *DB) InitSchema() error {
	_, err := db.Exec(schema)
	return err
}
