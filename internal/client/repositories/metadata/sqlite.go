package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophboard/internal/dbx"
)

// SQLiteRepository implements Repository over a dbx.DBTX, so it can run inside
// a transaction.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM metadata`)
	if err != nil {
		return fmt.Errorf("failed to clear metadata: %w", err)
	}
	return nil
}

// Session reads the stored session in one query. It returns (nil, nil) when
// no token is stored.
func (r *SQLiteRepository) Session(ctx context.Context) (*Session, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key, value FROM metadata WHERE key IN (?, ?, ?)`, keyAddress, keyToken, keyServer)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	defer rows.Close()

	var s Session
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		switch key {
		case keyAddress:
			s.Address = string(value)
		case keyToken:
			s.Token = string(value)
		case keyServer:
			s.Server = string(value)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session rows: %w", err)
	}

	if s.Token == "" {
		return nil, nil
	}
	return &s, nil
}

// SaveSession upserts every field of s with a single statement.
func (r *SQLiteRepository) SaveSession(ctx context.Context, s Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?), (?, ?), (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, keyAddress, []byte(s.Address), keyToken, []byte(s.Token), keyServer, []byte(s.Server))
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// SetToken replaces the stored credential, e.g. after a refresh.
func (r *SQLiteRepository) SetToken(ctx context.Context, token string) error {
	return r.Set(ctx, keyToken, []byte(token))
}
