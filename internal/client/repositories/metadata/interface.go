// Package metadata stores the client session (credential, address, server)
// as key/value pairs in the local SQLite database.
package metadata

import (
	"context"
)

// Repository is a small key/value store with typed access to the session
// keys. Get returns (nil, nil) for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error

	Session(ctx context.Context) (*Session, error)
	SaveSession(ctx context.Context, s Session) error
	SetToken(ctx context.Context, token string) error
}
