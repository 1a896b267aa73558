// Package services contains application services for the gophboard client.
// This file defines the session service: wallet login, session restore for
// later invocations, logout and credential persistence.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophboard/internal/client/client"
	"github.com/dmitrijs2005/gophboard/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophboard/internal/client/wallet"
	"github.com/dmitrijs2005/gophboard/internal/dbx"
)

// AuthService defines session operations for the CLI.
//
// Contract:
//   - Login: sign the login message, obtain a credential and persist the session.
//   - Restore: load a persisted session into the API client.
//   - SaveToken: persist a renewed credential.
//   - Whoami: report the persisted session without contacting the server.
//   - Logout: wipe the persisted session.
//   - Ping: check server liveness.
type AuthService interface {
	Login(ctx context.Context, w *wallet.Wallet) (*metadata.Session, error)
	Restore(ctx context.Context) (*metadata.Session, error)
	SaveToken(ctx context.Context, token string) error
	Whoami(ctx context.Context) (*metadata.Session, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
}

// authService is backed by a remote Client and the local SQLite store.
type authService struct {
	client client.Client
	db     *sql.DB
	server string
}

// NewAuthService binds the service to an API client, the local database and
// the server address sessions are recorded against.
func NewAuthService(c client.Client, db *sql.DB, server string) AuthService {
	return &authService{client: c, db: db, server: server}
}

func (a *authService) getMetadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(a.db)
}

func (a *authService) Login(ctx context.Context, w *wallet.Wallet) (*metadata.Session, error) {
	message, signature, err := w.SignLogin()
	if err != nil {
		return nil, fmt.Errorf("sign login message: %w", err)
	}

	token, err := a.client.Login(ctx, w.Address(), message, signature)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	s := metadata.Session{Address: w.Address(), Token: token, Server: a.server}
	if err := a.saveSession(ctx, s); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return &s, nil
}

// saveSession replaces the stored session in a single transaction.
func (a *authService) saveSession(ctx context.Context, s metadata.Session) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		return repo.SaveSession(ctx, s)
	})
}

// Restore hands the persisted credential to the API client. A missing
// session, or one recorded against another server, is
// client.ErrLocalDataNotAvailable.
func (a *authService) Restore(ctx context.Context) (*metadata.Session, error) {
	s, err := a.Whoami(ctx)
	if err != nil {
		return nil, err
	}
	if s.Server != "" && a.server != "" && s.Server != a.server {
		return nil, fmt.Errorf("%w: session belongs to %s", client.ErrLocalDataNotAvailable, s.Server)
	}
	a.client.SetToken(s.Token)
	return s, nil
}

func (a *authService) SaveToken(ctx context.Context, token string) error {
	return a.getMetadataRepo().SetToken(ctx, token)
}

func (a *authService) Whoami(ctx context.Context) (*metadata.Session, error) {
	s, err := a.getMetadataRepo().Session(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, client.ErrLocalDataNotAvailable
	}
	return s, nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.client.SetToken("")
	return a.getMetadataRepo().Clear(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
