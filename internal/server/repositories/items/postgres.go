// Package items provides the PostgreSQL-backed item store.
package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/dmitrijs2005/gophboard/internal/dbx"
	"github.com/dmitrijs2005/gophboard/internal/server/models"
)

// PostgresRepository implements item storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, owner, title, content, category, deleted, created_at, updated_at`

// Create inserts a new item row.
func (r *PostgresRepository) Create(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO items (id, owner, title, content, category, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.Owner, item.Title, item.Content, string(item.Category), item.Deleted, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Get returns the owner's item with the given id.
func (r *PostgresRepository) Get(ctx context.Context, owner, id string) (*models.Item, error) {
	query := `SELECT ` + selectColumns + ` FROM items WHERE id = $1 AND owner = $2`

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id, owner))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

// Update overwrites the mutable fields of an existing item.
func (r *PostgresRepository) Update(ctx context.Context, item *models.Item) error {
	query := `
		UPDATE items SET title = $1, content = $2, category = $3, deleted = $4, updated_at = $5
		WHERE id = $6 AND owner = $7
	`
	res, err := r.db.ExecContext(ctx, query,
		item.Title, item.Content, string(item.Category), item.Deleted, item.UpdatedAt, item.ID, item.Owner)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

// Delete removes the item row permanently.
func (r *PostgresRepository) Delete(ctx context.Context, owner, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1 AND owner = $2`, id, owner)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

// ListActive returns every non-deleted item of owner in no particular order.
func (r *PostgresRepository) ListActive(ctx context.Context, owner string) ([]*models.Item, error) {
	query := `SELECT ` + selectColumns + ` FROM items WHERE owner = $1 AND deleted = FALSE`
	return r.list(ctx, query, owner)
}

// ListDeleted returns one page of soft-deleted items, most recently updated first.
func (r *PostgresRepository) ListDeleted(ctx context.Context, owner string, offset, limit int) ([]*models.Item, error) {
	query := `SELECT ` + selectColumns + ` FROM items
		WHERE owner = $1 AND deleted = TRUE
		ORDER BY updated_at DESC, id
		LIMIT $2 OFFSET $3`
	return r.list(ctx, query, owner, limit, offset)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Item, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select items: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*models.Item, error) {
	var item models.Item
	var category string
	if err := s.Scan(&item.ID, &item.Owner, &item.Title, &item.Content, &category,
		&item.Deleted, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	item.Category = common.Category(category)
	return &item, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
