package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/gophboard/internal/client/client"
	"github.com/dmitrijs2005/gophboard/internal/client/config"
	"github.com/dmitrijs2005/gophboard/internal/client/controller"
	"github.com/dmitrijs2005/gophboard/internal/client/services"
	"github.com/dmitrijs2005/gophboard/internal/logging"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var errNotLoggedIn = errors.New("not logged in, run `gophboard login` first")

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB
	client *client.HTTPClient
	auth   services.AuthService
	ctrl   *controller.Controller

	reader *bufio.Reader
	out    io.Writer

	logFile *os.File
}

func newApp(in io.Reader, out io.Writer) *App {
	return &App{reader: bufio.NewReader(in), out: out, log: logging.Discard()}
}

// open wires local storage, the API client and the sync controller for cfg.
func (a *App) open(ctx context.Context, cfg *config.Config) error {
	a.config = cfg

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.logFile = f
		a.log = logging.NewTextLogger(f, "debug")
	}
	a.log = a.log.With("app", "gophboard")

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		a.log.Error(ctx, "error initializing database", "error", err)
		return err
	}
	a.db = db

	a.client = client.NewHTTPClient(cfg.ServerEndpointAddr, cfg.RequestTimeout, cfg.RefreshBefore)
	a.auth = services.NewAuthService(a.client, db, cfg.ServerEndpointAddr)
	a.client.OnToken(func(token string) {
		if err := a.auth.SaveToken(context.Background(), token); err != nil {
			a.log.Warn(context.Background(), "token not persisted", "error", err)
		}
	})
	a.ctrl = controller.New(a.client, nil, a.log)
	return nil
}

func (a *App) Close() error {
	var errs []error
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	if a.logFile != nil {
		errs = append(errs, a.logFile.Close())
	}
	return errors.Join(errs...)
}

// requireSession loads the stored credential into the API client.
func (a *App) requireSession(ctx context.Context) error {
	if _, err := a.auth.Restore(ctx); err != nil {
		if errors.Is(err, client.ErrLocalDataNotAvailable) {
			return errNotLoggedIn
		}
		return err
	}
	return nil
}

// loadBoard restores the session and fetches the board.
func (a *App) loadBoard(ctx context.Context) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	return a.ctrl.Reload(ctx)
}

// markdownStyle picks a colored style matching the terminal background, and
// plain text when output is not a terminal.
func (a *App) markdownStyle() string {
	f, ok := a.out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return "notty"
	}
	if termenv.NewOutput(f).HasDarkBackground() {
		return "dark"
	}
	return "light"
}
