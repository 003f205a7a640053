// Package server wires and runs the development backend: an in-memory
// blueprint store served over gRPC, with graceful shutdown on signals.
package server

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/blueprint/internal/logging"
	"github.com/dmitrijs2005/blueprint/internal/server/blueprints"
	"github.com/dmitrijs2005/blueprint/internal/server/config"

	gs "github.com/dmitrijs2005/blueprint/internal/server/grpc"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	blueprints *blueprints.Service
}

func NewApp(c *config.Config) *App {
	logger := logging.New(c.LogLevel, c.LogFormat, os.Stdout)
	bs := blueprints.NewService(blueprints.NewInMemoryRepository(), logger)

	return &App{config: c, logger: logger, blueprints: bs}
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.blueprints, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or the process receives a stop signal.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
