package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophboard/internal/dbx"
	"github.com/dmitrijs2005/gophboard/internal/server/repositories/items"
	"github.com/dmitrijs2005/gophboard/internal/server/repositories/orders"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Items(db dbx.DBTX) items.Repository
	Orders(db dbx.DBTX) orders.Repository
}
