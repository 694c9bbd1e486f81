// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/relabs-tech/novatel_gps/internal/app"
	"github.com/relabs-tech/novatel_gps/internal/logging"
)

func main() {
	interval := flag.Duration("interval", 200*time.Millisecond, "time between simulated BESTPOS/BESTVEL pairs")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	logging.Init("console", *level)
	log.Info().Msg("starting novatel-gps (mock console)")

	if err := app.RunMockConsole(*interval); err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}
}
