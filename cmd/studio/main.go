package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/blueprint/internal/buildinfo"
	"github.com/dmitrijs2005/blueprint/internal/client/cli"
	"github.com/dmitrijs2005/blueprint/internal/client/config"
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

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	st, err := studio.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer st.Close()

	go st.Run(ctx)

	app := cli.NewApp(cli.Deps{
		Session:      st.Session,
		Status:       st.Monitor,
		Catalog:      st.Coordinator,
		Calendar:     st.Calendar,
		Interactions: st.Interactions,
		Logger:       logger,
	}, os.Stdin, os.Stdout)

	app.Run(ctx)

}
