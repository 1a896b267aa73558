package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophboard/internal/dbx"
	"github.com/dmitrijs2005/gophboard/internal/server/repositories/items"
	"github.com/dmitrijs2005/gophboard/internal/server/repositories/memory"
	"github.com/dmitrijs2005/gophboard/internal/server/repositories/orders"
)

// InMemoryRepositoryManager ignores the handle it is given and always returns
// the same process-wide stores.
type InMemoryRepositoryManager struct {
	items  *memory.ItemRepository
	orders *memory.OrderRepository
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Items(dbx.DBTX) items.Repository {
	return m.items
}

func (m *InMemoryRepositoryManager) Orders(dbx.DBTX) orders.Repository {
	return m.orders
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{
		items:  memory.NewItemRepository(),
		orders: memory.NewOrderRepository(),
	}
}
