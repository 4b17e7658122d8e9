package sqlite

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"
)

// Store wraps a sqlite database. It backs the same repository interfaces
// as the postgresql package, which also makes it the database the test
// suite runs against.
type Store struct {
	db *sql.DB
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// A single connection keeps in-memory databases alive and serializes
	// writers, which sqlite wants anyway.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }
