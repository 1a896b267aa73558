package items

import (
	"context"

	"github.com/dmitrijs2005/gophboard/internal/server/models"
)

// Repository persists individual cards. It knows nothing about ordering.
// Lookups are always scoped by owner; a missing or foreign item yields
// common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, item *models.Item) error
	Get(ctx context.Context, owner, id string) (*models.Item, error)
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, owner, id string) error
	ListActive(ctx context.Context, owner string) ([]*models.Item, error)
	ListDeleted(ctx context.Context, owner string, offset, limit int) ([]*models.Item, error)
}
