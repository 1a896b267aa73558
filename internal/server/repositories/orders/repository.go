package orders

import (
	"context"

	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/dmitrijs2005/gophboard/internal/server/models"
)

// Repository persists one ordered id list per (owner, category). Save
// replaces the whole list, so concurrent writers are last-writer-wins.
type Repository interface {
	Find(ctx context.Context, owner string, category common.Category) (*models.Order, error)
	Save(ctx context.Context, order *models.Order) error
	ListByOwner(ctx context.Context, owner string) ([]*models.Order, error)
}
