// Package server wires the application together: configuration, logging,
// storage, the feature services and the HTTP server, and drives graceful
// shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/musicbox/internal/logging"
	"github.com/dmitrijs2005/musicbox/internal/server/albums"
	"github.com/dmitrijs2005/musicbox/internal/server/auth"
	"github.com/dmitrijs2005/musicbox/internal/server/config"
	"github.com/dmitrijs2005/musicbox/internal/server/httpapi"
	"github.com/dmitrijs2005/musicbox/internal/server/media"
	"github.com/dmitrijs2005/musicbox/internal/server/playlists"
	"github.com/dmitrijs2005/musicbox/internal/server/shared/db"
	"github.com/dmitrijs2005/musicbox/internal/server/songs"
	"github.com/dmitrijs2005/musicbox/internal/server/users"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	manager db.RepositoryManager
	http    *http.Server
}

// NewApp builds the whole service: it connects to Postgres, applies the
// schema migrations and assembles the HTTP server. The returned app is ready
// for Run.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.New(cfg.Env, os.Stdout)

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	manager, err := db.NewPostgresRepositoryManager(ctx, cfg.DB.DSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := manager.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("db migrate error: %w", err)
	}

	tokens := auth.NewTokenManager(
		[]byte(cfg.Auth.SecretKey),
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
		cfg.Auth.Leeway,
	)
	credentials := users.NewCredentialSource(users.NewPostgresRepository(manager.Conn()))

	svc := httpapi.Services{
		Users:     users.NewService(manager.Conn(), manager.Users, log),
		Auth:      auth.NewService(credentials, newRevocationRegistry(cfg), tokens, log),
		Songs:     songs.NewService(manager.Conn(), manager.Songs, log),
		Albums:    albums.NewService(manager.Conn(), manager.Albums, log),
		Playlists: playlists.NewService(manager.Conn(), manager.Playlists, log),
		Media:     media.NewService(cfg.S3, log),
	}

	api := httpapi.NewServer(svc, manager.Conn(), cfg.HTTPServer.CORSOrigins, log)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      api.Router(),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{config: cfg, log: log, manager: manager, http: srv}, nil
}

// newRevocationRegistry picks Redis when an address is configured, otherwise
// revocations stay in process memory.
func newRevocationRegistry(cfg *config.Config) auth.RevocationRegistry {
	if cfg.Redis.Address == "" {
		return auth.NewInMemoryRegistry()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return auth.NewRedisRegistry(client)
}

func (app *App) initSignalHandler(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancel()
	}()
}

// Run serves HTTP until ctx is cancelled or an OS signal arrives, then shuts
// the server down within the configured timeout and closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.initSignalHandler(cancel)

	errCh := make(chan error, 1)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.log.Info(ctx, "starting http server",
			"addr", app.http.Addr, "env", app.config.Env)
		if err := app.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			cancel()
		}
	}()

	<-ctx.Done()

	app.log.Info(ctx, "shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), app.config.HTTPServer.ShutdownTimeout)
	defer cancelShutdown()

	if err := app.http.Shutdown(shutdownCtx); err != nil {
		app.log.Error(ctx, "shutdown error", "error", err)
	}
	wg.Wait()

	if err := app.manager.Close(); err != nil {
		app.log.Error(ctx, "db close error", "error", err)
	}

	select {
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	default:
	}

	app.log.Info(ctx, "server stopped")
	return nil
}
