// Package localstore implements the durable local object store: named
// collections of JSON records in SQLite, with schema versioning handled by
// embedded goose migrations and secondary lookups served by expression
// indexes over json_extract.
//
// Records are stored whole (full-record upsert, no partial merge) and are
// expected to be normalized by the caller before Put. Each operation runs in
// its own implicit transaction and completes fully before returning; use
// WithTx for read-modify-write sequences that must be atomic.
package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/fieldworks/sitereport/internal/client/localstore/migrations"
	"github.com/fieldworks/sitereport/internal/common"
	"github.com/fieldworks/sitereport/internal/dbx"
	"github.com/fieldworks/sitereport/internal/logging"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Store is the local object store handle. Construct with New, then call
// Open before use. The zero value is not usable.
type Store struct {
	dsn string
	log logging.Logger

	mu sync.Mutex
	db *sql.DB

	// tx is set only on transaction-scoped views produced by WithTx.
	tx dbx.DBTX
}

// New returns an unopened Store bound to the given SQLite DSN.
func New(dsn string, log logging.Logger) *Store {
	return &Store{dsn: dsn, log: log}
}

// Open establishes the database handle and applies any pending schema
// migrations. It is idempotent, and concurrent callers share a single
// underlying open attempt: the mutex serializes them, and later callers see
// the handle the first one created rather than racing separate upgrades.
func (s *Store) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.dsn)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	// modernc.org/sqlite serializes writes itself; a single connection keeps
	// shared-cache memory databases coherent as well.
	db.SetMaxOpenConns(1)

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return fmt.Errorf("%w: migrations: %v", common.ErrStorageUnavailable, err)
	}

	s.db = db
	s.log.Debug(ctx, "local store opened", "dsn", s.dsn)
	return nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// Close releases the database handle. Further operations fail with
// common.ErrStorageUnavailable until Open is called again.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) handle() (dbx.DBTX, error) {
	if s.tx != nil {
		return s.tx, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, fmt.Errorf("%w: store not open", common.ErrStorageUnavailable)
	}
	return s.db, nil
}

func lookup(name string) (collection, error) {
	col, ok := collections[name]
	if !ok {
		return collection{}, fmt.Errorf("%w: collection %q", common.ErrNotFound, name)
	}
	return col, nil
}

// Put upserts a record by its primary key, replacing the full record. The
// key is read from the collection's declared key field of the marshaled
// record and must be a non-empty string.
func (s *Store) Put(ctx context.Context, name string, record any) error {
	col, err := lookup(name)
	if err != nil {
		return err
	}
	h, err := s.handle()
	if err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal %s record: %w", name, err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("%s record is not an object: %w", name, err)
	}
	key, _ := fields[col.keyField].(string)
	if key == "" {
		return fmt.Errorf("%s record has no %q key", name, col.keyField)
	}

	query := fmt.Sprintf(`INSERT INTO %s (key, record) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET record = excluded.record`, col.table)
	if _, err := h.ExecContext(ctx, query, key, string(data)); err != nil {
		return fmt.Errorf("failed to upsert %s record: %w", name, err)
	}
	return nil
}

// Get loads the record stored under key into out. Absence is not an error:
// the boolean result reports whether a record was found.
func (s *Store) Get(ctx context.Context, name, key string, out any) (bool, error) {
	col, err := lookup(name)
	if err != nil {
		return false, err
	}
	h, err := s.handle()
	if err != nil {
		return false, err
	}

	var data string
	query := fmt.Sprintf(`SELECT record FROM %s WHERE key = ?`, col.table)
	err = h.QueryRowContext(ctx, query, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get %s[%s]: %w", name, key, err)
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return false, fmt.Errorf("decode %s[%s]: %w", name, key, err)
	}
	return true, nil
}

// GetAll returns a fresh snapshot of every record in the collection.
func (s *Store) GetAll(ctx context.Context, name string) ([]json.RawMessage, error) {
	col, err := lookup(name)
	if err != nil {
		return nil, err
	}
	return s.query(ctx, name, fmt.Sprintf(`SELECT record FROM %s`, col.table))
}

// GetAllByIndex returns every record whose indexed field equals value.
func (s *Store) GetAllByIndex(ctx context.Context, name, index, value string) ([]json.RawMessage, error) {
	col, err := lookup(name)
	if err != nil {
		return nil, err
	}
	field, ok := col.indexes[index]
	if !ok {
		return nil, fmt.Errorf("%w: index %q on collection %q", common.ErrNotFound, index, name)
	}
	query := fmt.Sprintf(`SELECT record FROM %s WHERE json_extract(record, '$.%s') = ?`, col.table, field)
	return s.query(ctx, name, query, value)
}

func (s *Store) query(ctx context.Context, name, query string, args ...any) ([]json.RawMessage, error) {
	h, err := s.handle()
	if err != nil {
		return nil, err
	}

	rows, err := h.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select %s records: %w", name, err)
	}
	defer rows.Close()

	var result []json.RawMessage
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		result = append(result, json.RawMessage(data))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes the record stored under key. Deleting an absent key is a
// no-op, not an error.
func (s *Store) Delete(ctx context.Context, name, key string) error {
	col, err := lookup(name)
	if err != nil {
		return err
	}
	h, err := s.handle()
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE key = ?`, col.table)
	if _, err := h.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete %s[%s]: %w", name, key, err)
	}
	return nil
}

// Clear removes every record from the collection.
func (s *Store) Clear(ctx context.Context, name string) error {
	col, err := lookup(name)
	if err != nil {
		return err
	}
	h, err := s.handle()
	if err != nil {
		return err
	}
	if _, err := h.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, col.table)); err != nil {
		return fmt.Errorf("failed to clear %s: %w", name, err)
	}
	return nil
}

// WithTx runs fn against a transaction-scoped view of the store, committing
// on success and rolling back on error or panic. The view must not be
// retained after fn returns.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	s.mu.Lock()
	db := s.db
	s.mu.Unlock()
	if db == nil {
		return fmt.Errorf("%w: store not open", common.ErrStorageUnavailable)
	}

	return dbx.WithTx(ctx, db, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(&Store{dsn: s.dsn, log: s.log, tx: tx})
	})
}
