package main

import (
	"flag"
	"os"

	"github.com/controlescolar/escolar/internal/pkg/logger"
	"github.com/controlescolar/escolar/internal/server"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML configuration file")
	flag.Parse()

	srv, err := server.NewWebServer(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize web shell")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Web shell stopped with errors")
		os.Exit(1)
	}

	logger.Info().Msg("Web shell finished gracefully.")
}
