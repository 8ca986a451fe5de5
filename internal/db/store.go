package db

import (
	"context"
	"database/sql"
	"errors"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/qcsv/pkg/qcsv"
)

// SQLStore adapts a *sql.DB (SQLite or MySQL) to qcsv.Store.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore wraps db. The store takes ownership and closes db on Close.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// ExecScript implements qcsv.Store.
func (s *SQLStore) ExecScript(ctx context.Context, script string) error {
	_, err := s.db.ExecContext(ctx, script)
	return err
}

// Close implements qcsv.Store.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for callers that need to query results.
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

// PgStore adapts *pgxpool.Pool to qcsv.Store.
//
// Thread-Safety: Safe for concurrent use (pgxpool.Pool is thread-safe).
type PgStore struct {
	pool    *pgxpool.Pool
	closers []io.Closer
}

// NewPgStore wraps pool. The store takes ownership and closes pool on Close,
// then closes each of closers (for example a Cloud SQL dialer).
func NewPgStore(pool *pgxpool.Pool, closers ...io.Closer) *PgStore {
	return &PgStore{pool: pool, closers: closers}
}

// ExecScript implements qcsv.Store.
func (s *PgStore) ExecScript(ctx context.Context, script string) error {
	_, err := s.pool.Exec(ctx, script)
	return err
}

// Close implements qcsv.Store.
func (s *PgStore) Close() error {
	s.pool.Close()
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// Pool exposes the underlying pool for callers that need to query results.
func (s *PgStore) Pool() *pgxpool.Pool {
	return s.pool
}

var (
	_ qcsv.Store = (*SQLStore)(nil)
	_ qcsv.Store = (*PgStore)(nil)
)
