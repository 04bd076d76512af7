// Package store implements the tenant-scoped data access layer.
//
// Every function touching tenant-owned rows takes the tenant id as its first
// argument after the context; the id is set once from the caller's identity
// and is never taken from request input. Reads that miss — including
// references to rows owned by another tenant — return ErrNotFound, so a
// cross-tenant probe is indistinguishable from a lookup of a row that does
// not exist.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type Config struct {
	Dialect string `conf:"dialect" yaml:"dialect" json:"dialect"`
	DSN     string `conf:"dsn"     yaml:"dsn"     json:"dsn"`

	MaxOpenConns    int           `conf:"max_open_conns"    yaml:"max_open_conns"    json:"max_open_conns"`
	MaxIdleConns    int           `conf:"max_idle_conns"    yaml:"max_idle_conns"    json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `conf:"conn_max_lifetime" yaml:"conn_max_lifetime" json:"conn_max_lifetime"`
}

// Open opens the configured database and returns the connection pool plus the
// normalized dialect name.
func Open(cfg Config) (*sql.DB, string, error) {
	var (
		db      *sql.DB
		dialect string
		err     error
	)

	switch cfg.Dialect {
	case "postgres", "pgx", "postgresdb", "pg", "postgresql":
		db, err = sql.Open("pgx", cfg.DSN)
		dialect = DialectPostgres
	case "sqlite3", "sqlite":
		db, err = sql.Open("sqlite", cfg.DSN)
		dialect = DialectSQLite
	case "mysql", "tidb":
		db, err = sql.Open("mysql", cfg.DSN)
		dialect = DialectMySQL
	default:
		return nil, "", fmt.Errorf("store: invalid dialect: %s", cfg.Dialect)
	}

	if err != nil {
		return nil, "", fmt.Errorf("store: open %s: %w", dialect, err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return db, dialect, nil
}

const (
	DialectMySQL    = "mysql"
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)
