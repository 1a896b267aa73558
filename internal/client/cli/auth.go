package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophboard/internal/client/client"
	"github.com/dmitrijs2005/gophboard/internal/client/wallet"
	"github.com/spf13/cobra"
)

// getSecret is swapped in tests.
var getSecret = GetSecret

// loadWallet reads the key file, or asks for the key when there is none.
// An encrypted key file asks for its passphrase.
func (a *App) loadWallet() (*wallet.Wallet, error) {
	w, err := wallet.Load(a.config.KeyFile)
	if err == nil {
		return w, nil
	}
	if errors.Is(err, wallet.ErrPassphraseRequired) {
		pass, err := getSecret("Passphrase: ", a.out)
		if err != nil {
			return nil, err
		}
		defer clear(pass)
		return wallet.LoadEncrypted(a.config.KeyFile, pass)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	secret, err := getSecret("Private key (hex): ", a.out)
	if err != nil {
		return nil, err
	}
	defer clear(secret)
	return wallet.FromHex(string(secret))
}

// Login signs the login message with the wallet and stores the session.
func (a *App) Login(ctx context.Context, save bool) error {
	w, err := a.loadWallet()
	if err != nil {
		return err
	}

	s, err := a.auth.Login(ctx, w)
	if err != nil {
		a.log.Warn(ctx, "login failed", "address", w.Address(), "error", err)
		return err
	}
	a.log.Info(ctx, "logged in", "address", s.Address)

	if save {
		if err := w.Save(a.config.KeyFile); err != nil && !errors.Is(err, wallet.ErrKeyExists) {
			return err
		}
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", s.Address)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	if err := a.ctrl.OnAuthChanged(ctx, false); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	s, err := a.auth.Whoami(ctx)
	if err != nil {
		if errors.Is(err, client.ErrLocalDataNotAvailable) {
			return errNotLoggedIn
		}
		return err
	}
	fmt.Fprintf(a.out, "%s @ %s\n", s.Address, s.Server)
	return nil
}

// Keygen creates a wallet and writes it to the key file, sealed under a
// passphrase when encrypt is set.
func (a *App) Keygen(force, encrypt bool) error {
	if force {
		if err := os.Remove(a.config.KeyFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	w, err := wallet.Generate()
	if err != nil {
		return err
	}
	save := w.Save
	if encrypt {
		pass, err := getSecret("New passphrase: ", a.out)
		if err != nil {
			return err
		}
		defer clear(pass)
		if len(pass) == 0 {
			return errors.New("passphrase cannot be empty")
		}
		save = func(path string) error { return w.SaveEncrypted(path, pass) }
	}
	if err := save(a.config.KeyFile); err != nil {
		if errors.Is(err, wallet.ErrKeyExists) {
			return fmt.Errorf("%w: %s (use --force to replace it)", err, a.config.KeyFile)
		}
		return err
	}
	fmt.Fprintf(a.out, "New wallet %s saved to %s\n", w.Address(), a.config.KeyFile)
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	if err := a.auth.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s is up\n", a.config.ServerEndpointAddr)
	return nil
}

func newAuthCmds(app *App) []*cobra.Command {
	var save bool
	login := &cobra.Command{
		Use:   "login",
		Short: "Sign in with the wallet key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Login(cmd.Context(), save)
		},
	}
	login.Flags().BoolVar(&save, "save", false, "write a typed-in key to the key file")

	var force, encrypt bool
	keygen := &cobra.Command{
		Use:   "keygen",
		Short: "Create a new wallet key file",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return app.Keygen(force, encrypt)
		},
	}
	keygen.Flags().BoolVar(&force, "force", false, "replace an existing key file")
	keygen.Flags().BoolVar(&encrypt, "encrypt", false, "protect the key file with a passphrase")

	return []*cobra.Command{
		login,
		keygen,
		{
			Use:   "logout",
			Short: "Forget the stored session",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return app.Logout(cmd.Context())
			},
		},
		{
			Use:   "whoami",
			Short: "Show the signed-in address",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return app.Whoami(cmd.Context())
			},
		},
		{
			Use:   "ping",
			Short: "Check that the server is reachable",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return app.Ping(cmd.Context())
			},
		},
	}
}
