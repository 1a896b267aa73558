// Package db owns the process-wide PostgreSQL handle.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Migrator applies the schema to a freshly opened handle.
type Migrator interface {
	RunMigrations(context.Context, *sql.DB) error
}

// ErrClosed is returned by Conn after Close.
var ErrClosed = errors.New("connector closed")

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// Connector opens the database on first use and hands the same *sql.DB to
// every later caller. Conn is safe to call from many goroutines at once.
type Connector struct {
	dsn      string
	migrator Migrator

	once sync.Once
	db   *sql.DB
	err  error
}

func NewConnector(dsn string, migrator Migrator) *Connector {
	return &Connector{dsn: dsn, migrator: migrator}
}

// Conn returns the shared handle, opening, pinging and migrating it on the
// first call. A failed first call is remembered and returned to all callers.
func (c *Connector) Conn(ctx context.Context) (*sql.DB, error) {
	c.once.Do(func() {
		c.db, c.err = c.open(ctx)
	})
	return c.db, c.err
}

func (c *Connector) open(ctx context.Context) (*sql.DB, error) {
	db, err := sqlOpen("pgx", c.dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	if c.migrator != nil {
		if err := c.migrator.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration error: %w", err)
		}
	}
	return db, nil
}

// Close releases the handle if it was opened. It waits for an open that is
// in flight; a connector closed before its first Conn never opens.
func (c *Connector) Close() error {
	c.once.Do(func() { c.err = ErrClosed })
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}
