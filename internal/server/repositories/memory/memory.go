// Package memory implements the item and order stores in process memory.
// It backs the server when no database DSN is configured and serves as the
// store in service tests.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/dmitrijs2005/gophboard/internal/server/models"
)

// ItemRepository is a mutex-protected map of items keyed by id.
type ItemRepository struct {
	mu    sync.RWMutex
	items map[string]models.Item
}

func NewItemRepository() *ItemRepository {
	return &ItemRepository{items: make(map[string]models.Item)}
}

func (r *ItemRepository) Create(ctx context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = *item
	return nil
}

func (r *ItemRepository) Get(ctx context.Context, owner, id string) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[id]
	if !ok || it.Owner != owner {
		return nil, common.ErrorNotFound
	}
	return &it, nil
}

func (r *ItemRepository) Update(ctx context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.items[item.ID]
	if !ok || cur.Owner != item.Owner {
		return common.ErrorNotFound
	}
	updated := *item
	updated.CreatedAt = cur.CreatedAt
	r.items[item.ID] = updated
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, owner, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.items[id]
	if !ok || cur.Owner != owner {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *ItemRepository) ListActive(ctx context.Context, owner string) ([]*models.Item, error) {
	return r.filter(owner, false), nil
}

// ListDeleted mirrors the SQL ordering: updated_at descending, then id.
func (r *ItemRepository) ListDeleted(ctx context.Context, owner string, offset, limit int) ([]*models.Item, error) {
	all := r.filter(owner, true)
	slices.SortFunc(all, func(a, b *models.Item) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})

	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return []*models.Item{}, nil
	}
	end := len(all)
	if limit >= 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}

func (r *ItemRepository) filter(owner string, deleted bool) []*models.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Item, 0)
	for _, it := range r.items {
		if it.Owner == owner && it.Deleted == deleted {
			it := it
			out = append(out, &it)
		}
	}
	return out
}

type orderKey struct {
	owner    string
	category common.Category
}

// OrderRepository keeps one id list per (owner, category).
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[orderKey][]string
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[orderKey][]string)}
}

func (r *OrderRepository) Find(ctx context.Context, owner string, category common.Category) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids, ok := r.orders[orderKey{owner, category}]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &models.Order{Owner: owner, Category: category, ItemIDs: slices.Clone(ids)}, nil
}

func (r *OrderRepository) Save(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := slices.Clone(order.ItemIDs)
	if ids == nil {
		ids = []string{}
	}
	r.orders[orderKey{order.Owner, order.Category}] = ids
	return nil
}

func (r *OrderRepository) ListByOwner(ctx context.Context, owner string) ([]*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Order, 0, len(common.Categories))
	for _, c := range common.Categories {
		if ids, ok := r.orders[orderKey{owner, c}]; ok {
			out = append(out, &models.Order{Owner: owner, Category: c, ItemIDs: slices.Clone(ids)})
		}
	}
	return out, nil
}
