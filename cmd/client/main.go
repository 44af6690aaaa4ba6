package main

import (
	"context"
	"fmt"

	"github.com/codegenhq/codechat/internal/adapter"
	"github.com/codegenhq/codechat/internal/client"
	"github.com/codegenhq/codechat/internal/config"
	"github.com/codegenhq/codechat/internal/identity"
	"github.com/codegenhq/codechat/internal/logger"
	"github.com/codegenhq/codechat/internal/session"
	"github.com/codegenhq/codechat/internal/tui"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("codechat-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	identityStore, err := identity.NewSQLiteStore(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create identity store")
	}
	defer func() {
		if closeErr := identityStore.Close(); closeErr != nil {
			log.Err(closeErr).Msg("closing identity store failed")
		}
	}()

	store := session.NewStore(serverAdapter, log)
	ui := tui.New(serverAdapter, identityStore, store, log)

	app, err := client.NewApp(serverAdapter, identityStore, store, ui, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
