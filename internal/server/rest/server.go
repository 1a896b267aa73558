// Package rest exposes the board over HTTP: a POST-only JSON API wrapped in
// the status envelope of package wire.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/dmitrijs2005/gophboard/internal/logging"
	"github.com/dmitrijs2005/gophboard/internal/server/models"
	"github.com/dmitrijs2005/gophboard/internal/server/services"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// Authenticator issues and checks credentials.
type Authenticator interface {
	Login(ctx context.Context, address, message, signature string) (string, error)
	Refresh(ctx context.Context, address string) (string, error)
	Authenticate(ctx context.Context, token string) (string, error)
}

// Board is the ordering engine as seen by the handlers.
type Board interface {
	All(ctx context.Context, owner string) (*services.Board, error)
	Create(ctx context.Context, owner string, category common.Category, title string) (string, error)
	Move(ctx context.Context, owner string, u services.ItemUpdate) (string, error)
	SoftDelete(ctx context.Context, owner, id string, category common.Category) error
	PermanentDelete(ctx context.Context, owner, id string, category common.Category) error
	ListDeleted(ctx context.Context, owner string, offset int) ([]*models.Item, error)
	Restore(ctx context.Context, owner, id string) (*models.Item, error)
}

const shutdownTimeout = 10 * time.Second

type HTTPServer struct {
	address        string
	auth           Authenticator
	board          Board
	logger         logging.Logger
	allowedOrigins []string
}

func NewHTTPServer(a string, l logging.Logger, auth Authenticator, board Board, allowedOrigins []string) *HTTPServer {
	return &HTTPServer{
		address:        a,
		logger:         l.With("module", "http_server"),
		auth:           auth,
		board:          board,
		allowedOrigins: allowedOrigins,
	}
}

// Handler returns the routed API with CORS and request logging applied.
func (s *HTTPServer) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/api/login", s.login).Methods(http.MethodPost)

	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(s.requireAuth)
	protected.HandleFunc("/refresh", s.refresh).Methods(http.MethodPost)
	protected.HandleFunc("/items/all", s.allItems).Methods(http.MethodPost)
	protected.HandleFunc("/items/create", s.createItem).Methods(http.MethodPost)
	protected.HandleFunc("/items/update", s.updateItem).Methods(http.MethodPost)
	protected.HandleFunc("/items/delete", s.deleteItem).Methods(http.MethodPost)
	protected.HandleFunc("/items/delete-perm", s.deleteItemPermanently).Methods(http.MethodPost)
	protected.HandleFunc("/items/deleted", s.deletedItems).Methods(http.MethodPost)
	protected.HandleFunc("/items/restore", s.restoreItem).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", common.AuthorizationHeaderName},
	})
	return c.Handler(r)
}

func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
