package metadata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_SaveLoad(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	s, err := r.Session(ctx)
	require.NoError(t, err)
	assert.Nil(t, s)

	want := Session{Address: "0xAbC", Token: "jwt", Server: "http://localhost:8080"}
	require.NoError(t, r.SaveSession(ctx, want))

	got, err := r.Session(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)

	require.NoError(t, r.Delete(ctx, keyToken))
	got, err = r.Session(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "no token means no session")
}

func TestSaveSession_Overwrites(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.SaveSession(ctx, Session{Address: "0xA", Token: "t1", Server: "http://a"}))
	require.NoError(t, r.SaveSession(ctx, Session{Address: "0xB", Token: "t2", Server: "http://b"}))

	got, err := r.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, Session{Address: "0xB", Token: "t2", Server: "http://b"}, *got)
}

func TestSetToken_KeepsOtherFields(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.SaveSession(ctx, Session{Address: "0xA", Token: "old", Server: "http://a"}))
	require.NoError(t, r.SetToken(ctx, "new"))

	got, err := r.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, Session{Address: "0xA", Token: "new", Server: "http://a"}, *got)
}

func TestSession_IgnoresOtherKeys(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "theme", []byte("dark")))
	require.NoError(t, r.SetToken(ctx, "tok"))

	got, err := r.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, Session{Token: "tok"}, *got)
}
