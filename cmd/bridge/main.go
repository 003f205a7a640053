package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/blueprint/internal/buildinfo"
	"github.com/dmitrijs2005/blueprint/internal/client/config"
	"github.com/dmitrijs2005/blueprint/internal/client/httpapi"
	"github.com/dmitrijs2005/blueprint/internal/client/studio"
	"github.com/dmitrijs2005/blueprint/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	st, err := studio.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer st.Close()

	go st.Run(ctx)

	api := httpapi.NewServer(st.Coordinator, st.Calendar, st.Interactions, st.Monitor, logger,
		httpapi.Options{AllowedOrigins: cfg.CORSOrigins})

	srv := &http.Server{
		Addr:              cfg.BridgeAddr,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info(ctx, "Starting HTTP bridge", "address", cfg.BridgeAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error(ctx, err.Error())
	}

}
