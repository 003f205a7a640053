// Package studio assembles the client runtime from a Config: local stores,
// the backend connection and its monitor, the session and the services on
// top. The CLI and the HTTP bridge both run on it.
package studio

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/blueprint/internal/client/auth"
	"github.com/dmitrijs2005/blueprint/internal/client/blobstore"
	"github.com/dmitrijs2005/blueprint/internal/client/client"
	"github.com/dmitrijs2005/blueprint/internal/client/config"
	"github.com/dmitrijs2005/blueprint/internal/client/seed"
	"github.com/dmitrijs2005/blueprint/internal/client/services"
	"github.com/dmitrijs2005/blueprint/internal/client/store"
	"github.com/dmitrijs2005/blueprint/internal/client/tasks"
	"github.com/dmitrijs2005/blueprint/internal/logging"
)

type Studio struct {
	Config  *config.Config
	Logger  logging.Logger
	Stores  *store.Stores
	Session *auth.Session
	Conn    *client.GRPCClient
	Monitor *client.Monitor

	Coordinator  *services.Coordinator
	Calendar     *services.Calendar
	Interactions *services.Interactions
}

// newUploader is a test seam for blobstore.NewS3Uploader.
var newUploader = func(ctx context.Context, cfg blobstore.Config) (blobstore.Uploader, error) {
	return blobstore.NewS3Uploader(ctx, cfg)
}

// Open builds a Studio. The backend need not be reachable: the monitor starts
// offline and Run brings it online once a ping succeeds.
func Open(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Studio, error) {
	seeds, err := seed.Default()
	if err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}

	stores, err := store.Open(ctx, cfg.StoreOptions(), logger)
	if err != nil {
		return nil, fmt.Errorf("local storage: %w", err)
	}

	session := auth.NewSession()
	if cfg.AccessToken != "" {
		if _, err := session.SignIn(cfg.AccessToken); err != nil {
			logger.Warn(ctx, "configured access token rejected", "error", err)
		}
	}

	conn, err := client.NewGRPCClient(client.Options{
		Addr:    cfg.BackendAddr,
		Timeout: cfg.CallTimeout,
		Tokens:  session,
	})
	if err != nil {
		_ = stores.Close()
		return nil, fmt.Errorf("backend client: %w", err)
	}

	var uploader blobstore.Uploader
	if cfg.Blob.Enabled() {
		if uploader, err = newUploader(ctx, cfg.Blob); err != nil {
			_ = conn.Close()
			_ = stores.Close()
			return nil, fmt.Errorf("blob uploader: %w", err)
		}
	}

	monitor := client.NewMonitor(conn, logger)

	s := &Studio{
		Config:  cfg,
		Logger:  logger,
		Stores:  stores,
		Session: session,
		Conn:    conn,
		Monitor: monitor,
	}

	s.Coordinator = services.NewCoordinator(services.CoordinatorDeps{
		Conn:      monitor,
		Identity:  session,
		Published: stores.Published,
		Seeds:     seeds,
		Uploader:  uploader,
		Logger:    logger,
	})
	s.Calendar = services.NewCalendar(services.CalendarDeps{
		Conn:        monitor,
		Identity:    session,
		Published:   stores.Published,
		Preferences: stores.Preferences,
		Tasks:       tasks.NewService(stores.Completion, logger),
		Logger:      logger,
	})
	s.Interactions = services.NewInteractions(monitor, session, seeds, seed.NewSessionOverlay(), logger)

	return s, nil
}

// Run keeps the connection monitor going until ctx is done.
func (s *Studio) Run(ctx context.Context) {
	s.Monitor.OnChange(func(m client.Mode) {
		s.Logger.Info(ctx, "connectivity changed", "mode", string(m))
	})
	s.Monitor.Run(ctx, s.Config.OnlineCheckInterval)
}

// Close releases the backend connection and the local database.
func (s *Studio) Close() error {
	return errors.Join(s.Conn.Close(), s.Stores.Close())
}

