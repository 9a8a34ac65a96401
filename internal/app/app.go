package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/mealplanner/internal/cli"
	"github.com/klokku/mealplanner/internal/config"
	"github.com/klokku/mealplanner/internal/database"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, database, services, and the two front ends:
// the interactive session and the HTTP server.
type Application struct {
	cfg    config.Application
	db     *database.DB
	deps   *Dependencies
	router *mux.Router
	srv    *http.Server
}

// NewApplication loads the configuration at configPath and builds the application.
func NewApplication(ctx context.Context, configPath string) (*Application, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return NewApplicationWithConfig(ctx, cfg)
}

func NewApplicationWithConfig(ctx context.Context, cfg config.Application) (*Application, error) {
	// DB + migrations
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	// Build dependencies (services, handlers...)
	deps, err := BuildDependencies(ctx, db, cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	r := mux.NewRouter()

	// Middleware chain
	SetupMiddleware(r)

	// Routes
	RegisterRoutes(r, deps)

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Server.Addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, db: db, deps: deps, router: r, srv: srv}, nil
}

// RunSession runs the interactive session on in and out until exit or end of input.
func (a *Application) RunSession(ctx context.Context, in io.Reader, out io.Writer) error {
	session := cli.NewSession(in, out, a.deps.Catalog, a.deps.PlanService, a.deps.ShoppingListService)
	return session.Run(ctx)
}

// Serve starts the HTTP server and blocks until ctx is done or the server fails.
func (a *Application) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", a.srv.Addr)
		errCh <- a.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (a *Application) Handler() http.Handler {
	return a.router
}

// Close releases the database.
func (a *Application) Close() error {
	a.deps.Unsubscribe()
	return a.db.Close()
}
