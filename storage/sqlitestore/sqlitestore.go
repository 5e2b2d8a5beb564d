// Package sqlitestore provides a SQLite implementation of the storage.Store
// interface.
//
// Examples:
//
//	store := sqlitestore.New(
//		"file:plume.s3db",
//		sqlitestore.WithTableName("plume_kv"),
//	)
//
//	store := sqlitestore.New(":memory:")
package sqlitestore

import (
	"database/sql"
	"fmt"

	"github.com/plumekv/plume/storage"

	_ "github.com/mattn/go-sqlite3" // Register sqlite3 driver
)

// Option is a functional option for configuring the store.
type Option func(*store)

// WithTableName overrides the default table name of "plume_store".
func WithTableName(tableName string) Option {
	return func(s *store) {
		s.tableName = tableName
	}
}

// New returns a store that provides sqlite backed storage, the table will be
// created optimistically on initialization. Any errors are considered
// non-recoverable and will panic.
func New(conn string, opts ...Option) storage.Store {
	db, err := sql.Open("sqlite3", conn)
	if err != nil {
		panic("failed to open sqlite connection: " + err.Error())
	}
	s := &store{
		db:        db,
		tableName: "plume_store",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ensureTable()
	return s
}

type store struct {
	db *sql.DB

	tableName string
}

func (s *store) Get(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, storage.ErrEmptyKey
	}

	row := s.db.QueryRow("SELECT value FROM "+s.tableName+" WHERE key = ?", key)

	var value []byte
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("sqlitestore: get: %w", err)
	}
	return value, nil
}

func (s *store) Save(key, value []byte) error {
	if len(key) == 0 {
		return storage.ErrEmptyKey
	}

	_, err := s.db.Exec(
		`INSERT INTO `+s.tableName+` (key, value, created_at, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
		value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("sqlitestore: save: %w", err)
	}
	return nil
}

func (s *store) Delete(key []byte) error {
	if len(key) == 0 {
		return storage.ErrEmptyKey
	}

	res, err := s.db.Exec("DELETE FROM "+s.tableName+" WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("sqlitestore: delete: %w", err)
	}
	if n, err := res.RowsAffected(); n == 0 || err != nil {
		return storage.ErrNotFound
	}
	return nil
}

// Close releases the underlying database handle.
func (s *store) Close() error {
	return s.db.Close()
}

func (s *store) ensureTable() {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS ` + s.tableName + ` (
		key BLOB PRIMARY KEY,
		value BLOB,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`)
	if err != nil {
		panic("failed to create table: " + err.Error())
	}
}
