package main

import (
	"flag"

	"github.com/rs/zerolog/log"

	"github.com/relabs-tech/novatel_gps/internal/app"
	"github.com/relabs-tech/novatel_gps/internal/config"
	"github.com/relabs-tech/novatel_gps/internal/logging"
)

func main() {
	configPath := flag.String("config", "./novatel_config.yaml", "path to configuration file")
	flag.Parse()

	// Load configuration
	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Init("console", config.Get().Log.Level)

	log.Info().Msg("starting novatel-gps console (MQTT subscriber)")

	if err := app.RunConsoleMQTT(); err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}
}
