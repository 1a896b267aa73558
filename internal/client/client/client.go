package client

import (
	"context"

	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/dmitrijs2005/gophboard/internal/wire"
)

// Client is the full remote surface used by the CLI and the terminal board.
type Client interface {
	Ping(ctx context.Context) error
	Login(ctx context.Context, address, message, signature string) (string, error)
	Refresh(ctx context.Context) (string, error)
	SetToken(token string)
	Token() string

	All(ctx context.Context) (*wire.AllItemsResponse, error)
	Create(ctx context.Context, title string, category common.Category) (string, error)
	Update(ctx context.Context, req wire.UpdateRequest) (string, error)
	Delete(ctx context.Context, id string, category common.Category) error
	DeletePermanently(ctx context.Context, id string, category common.Category) error
	Deleted(ctx context.Context, offset int) ([]wire.Item, error)
	Restore(ctx context.Context, id string) (*wire.Item, error)
}
