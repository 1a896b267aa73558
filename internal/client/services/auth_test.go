package services

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/gophboard/internal/client/client"
	"github.com/dmitrijs2005/gophboard/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophboard/internal/client/wallet"
	"github.com/dmitrijs2005/gophboard/internal/ethmsg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const server = "http://board.test"

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// fakeClient implements only what AuthService calls; anything else panics
// through the nil embedded interface.
type fakeClient struct {
	client.Client

	loginToken string
	loginErr   error
	pingErr    error

	lastAddress   string
	lastMessage   string
	lastSignature string
	token         string
}

func (f *fakeClient) Login(_ context.Context, address, message, signature string) (string, error) {
	f.lastAddress, f.lastMessage, f.lastSignature = address, message, signature
	if f.loginErr != nil {
		return "", f.loginErr
	}
	f.token = f.loginToken
	return f.loginToken, nil
}

func (f *fakeClient) SetToken(token string)      { f.token = token }
func (f *fakeClient) Token() string              { return f.token }
func (f *fakeClient) Ping(context.Context) error { return f.pingErr }

func TestLogin_SignsAndPersists(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{loginToken: "jwt-1"}
	svc := NewAuthService(fc, db, server)
	w, err := wallet.Generate()
	require.NoError(t, err)

	s, err := svc.Login(context.Background(), w)
	require.NoError(t, err)
	assert.Equal(t, metadata.Session{Address: w.Address(), Token: "jwt-1", Server: server}, *s)

	signer, err := ethmsg.Recover([]byte(fc.lastMessage), fc.lastSignature)
	require.NoError(t, err)
	assert.Equal(t, w.Address(), signer)
	assert.Equal(t, w.Address(), fc.lastAddress)

	stored, err := svc.Whoami(context.Background())
	require.NoError(t, err)
	assert.Equal(t, s, stored)
}

func TestLogin_ServerErrorPersistsNothing(t *testing.T) {
	db := setupDB(t)
	boom := errors.New("address mismatched")
	svc := NewAuthService(&fakeClient{loginErr: boom}, db, server)
	w, err := wallet.Generate()
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), w)
	require.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "login error")

	_, err = svc.Whoami(context.Background())
	assert.ErrorIs(t, err, client.ErrLocalDataNotAvailable)
}

func TestRestore(t *testing.T) {
	db := setupDB(t)
	repo := metadata.NewSQLiteRepository(db)
	ctx := context.Background()

	fc := &fakeClient{}
	svc := NewAuthService(fc, db, server)

	_, err := svc.Restore(ctx)
	require.ErrorIs(t, err, client.ErrLocalDataNotAvailable)

	require.NoError(t, repo.SaveSession(ctx, metadata.Session{Address: "0xA", Token: "tok", Server: server}))
	s, err := svc.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0xA", s.Address)
	assert.Equal(t, "tok", fc.Token())

	other := NewAuthService(&fakeClient{}, db, "http://elsewhere")
	_, err = other.Restore(ctx)
	assert.ErrorIs(t, err, client.ErrLocalDataNotAvailable)
}

func TestSaveToken(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	svc := NewAuthService(&fakeClient{loginToken: "old"}, db, server)
	w, err := wallet.Generate()
	require.NoError(t, err)
	_, err = svc.Login(ctx, w)
	require.NoError(t, err)

	require.NoError(t, svc.SaveToken(ctx, "new"))

	s, err := svc.Whoami(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", s.Token)
	assert.Equal(t, w.Address(), s.Address)
}

func TestLogout(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	fc := &fakeClient{loginToken: "tok"}
	svc := NewAuthService(fc, db, server)
	w, err := wallet.Generate()
	require.NoError(t, err)
	_, err = svc.Login(ctx, w)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))

	assert.Empty(t, fc.Token())
	_, err = svc.Whoami(ctx)
	assert.ErrorIs(t, err, client.ErrLocalDataNotAvailable)
}

func TestPing(t *testing.T) {
	boom := errors.New("down")
	svc := NewAuthService(&fakeClient{pingErr: boom}, setupDB(t), server)
	assert.ErrorIs(t, svc.Ping(context.Background()), boom)
}
