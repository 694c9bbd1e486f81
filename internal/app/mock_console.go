// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/relabs-tech/novatel_gps/internal/analyze"
	"github.com/relabs-tech/novatel_gps/internal/source"
)

// RunMockConsole decodes the built-in simulator stream and prints every
// frame, with no receiver or broker involved. Stops on Ctrl+C.
func RunMockConsole(interval time.Duration) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return runMockConsole(ctx, interval, os.Stdout)
}

func runMockConsole(ctx context.Context, interval time.Duration, out io.Writer) error {
	sim := source.NewSimulator(interval)
	defer sim.Close()
	stopClose := source.CloseOnDone(ctx, sim)
	defer stopClose()

	_, err := analyze.Stream(ctx, sim, out, analyze.Options{Logger: log.Logger})
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
