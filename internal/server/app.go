// Package server wires configuration, storage, services and the HTTP
// transport together and runs them until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gophboard/internal/logging"
	"github.com/dmitrijs2005/gophboard/internal/server/config"
	"github.com/dmitrijs2005/gophboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophboard/internal/server/rest"
	"github.com/dmitrijs2005/gophboard/internal/server/services"
	"github.com/dmitrijs2005/gophboard/internal/server/shared/db"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	connector    *db.Connector
	authService  *services.AuthService
	boardService *services.BoardService
}

// NewApp opens storage and builds the services. An empty DatabaseDSN selects
// the in-memory store.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	var (
		conn      *sql.DB
		connector *db.Connector
		manager   repomanager.RepositoryManager
	)

	if c.DatabaseDSN == "" {
		logger.Warn(ctx, "no database DSN configured, using in-memory store")
		manager = repomanager.NewInMemoryRepositoryManager()
	} else {
		manager = repomanager.NewPostgresRepositoryManager()
		connector = db.NewConnector(c.DatabaseDSN, manager)

		var err error
		conn, err = connector.Conn(ctx)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
	}

	return &App{
		config:       c,
		logger:       logger,
		connector:    connector,
		authService:  services.NewAuthService(c, logger),
		boardService: services.NewBoardService(conn, manager, c, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := rest.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.authService, app.boardService, app.config.AllowedOrigins)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if app.connector != nil {
		if err := app.connector.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}
	app.logger.Info(ctx, "App stopped")
}
