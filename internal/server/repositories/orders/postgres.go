// Package orders provides the PostgreSQL-backed order store. Id sequences
// are kept as a JSONB array per row.
package orders

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/dmitrijs2005/gophboard/internal/dbx"
	"github.com/dmitrijs2005/gophboard/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Find returns the order row or common.ErrorNotFound when the owner has
// never had an item in category.
func (r *PostgresRepository) Find(ctx context.Context, owner string, category common.Category) (*models.Order, error) {
	query := `SELECT item_ids FROM item_orders WHERE owner = $1 AND category = $2`

	var raw []byte
	err := r.db.QueryRowContext(ctx, query, owner, string(category)).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	ids, err := decodeIDs(raw)
	if err != nil {
		return nil, err
	}
	return &models.Order{Owner: owner, Category: category, ItemIDs: ids}, nil
}

// Save upserts the full id list of the row.
func (r *PostgresRepository) Save(ctx context.Context, order *models.Order) error {
	ids := order.ItemIDs
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}

	query := `
		INSERT INTO item_orders (owner, category, item_ids)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner, category)
		DO UPDATE SET item_ids = EXCLUDED.item_ids
	`
	if _, err := r.db.ExecContext(ctx, query, order.Owner, string(order.Category), raw); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListByOwner returns all order rows of owner.
func (r *PostgresRepository) ListByOwner(ctx context.Context, owner string) ([]*models.Order, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT category, item_ids FROM item_orders WHERE owner = $1`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Order, 0, len(common.Categories))
	for rows.Next() {
		var category string
		var raw []byte
		if err := rows.Scan(&category, &raw); err != nil {
			return nil, err
		}
		ids, err := decodeIDs(raw)
		if err != nil {
			return nil, err
		}
		result = append(result, &models.Order{Owner: owner, Category: common.Category(category), ItemIDs: ids})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func decodeIDs(raw []byte) ([]string, error) {
	ids := []string{}
	if len(raw) == 0 {
		return ids, nil
	}
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	return ids, nil
}
