package main

import (
	"fmt"

	"github.com/codegenhq/codechat/internal/config"
	"github.com/codegenhq/codechat/internal/devserver"
	"github.com/codegenhq/codechat/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("codechat-devserver")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	handler := devserver.NewHandler(*cfg, log)
	server := devserver.NewServer(handler, *cfg, log)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("devserver run error")
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
