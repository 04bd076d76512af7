package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotFound is returned for any tenant-scoped read that matches no row in
// the caller's tenant. Rows owned by other tenants are reported through this
// same error, never through a distinguishable one.
var ErrNotFound = errors.New("store: not found")

// Store executes tenant-scoped queries over a sql.DB.
type Store struct {
	db      *sql.DB
	dialect string
}

func New(db *sql.DB, dialect string) *Store {
	return &Store{db: db, dialect: dialect}
}

// DB exposes the underlying pool for lifecycle management.
func (s *Store) DB() *sql.DB {
	return s.db
}

// rebind converts ?-style placeholders to the dialect's form. Queries in this
// package are written with ?; postgres needs $N.
func (s *Store) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}

	var b strings.Builder

	n := 0

	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))

			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

func (s *Store) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, s.rebind(query), args...)
}

func (s *Store) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.rebind(query), args...)
}

func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.rebind(query), args...)
}

// exists runs a SELECT 1 style query and folds sql.ErrNoRows into false.
func (s *Store) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var one int

	err := s.queryRow(ctx, query, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, fmt.Errorf("store: exists query: %w", err)
	}

	return true, nil
}
