// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/relabs-tech/novatel_gps/internal/config"
	"github.com/relabs-tech/novatel_gps/internal/metrics"
	"github.com/relabs-tech/novatel_gps/internal/novatel"
	"github.com/relabs-tech/novatel_gps/internal/sink"
	"github.com/relabs-tech/novatel_gps/internal/source"
)

// RunGPSProducer reads NovAtel binary logs from the configured source and
// publishes the decoded fixes, velocities and drops to MQTT until SIGINT or
// SIGTERM.
func RunGPSProducer() error {
	cfg := config.Get()
	if cfg == nil {
		return errors.New("config not initialised")
	}
	logger := log.With().Str("component", "gps_producer").Logger()

	client, err := connectMQTT(cfg.MQTT.Broker, cfg.MQTT.ClientIDGPS)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Addr != "" {
		serveMetrics(ctx, cfg.Metrics.Addr, logger)
	}

	pub := sink.ClientPublisher{
		Client:  client,
		QoS:     cfg.MQTT.QoS,
		Retain:  cfg.MQTT.Retain,
		Timeout: cfg.MQTT.PublishTimeout,
	}
	return runProducer(ctx, cfg, pub, logger)
}

// runProducer wires source -> reader -> sinks and blocks until the source
// ends or ctx is cancelled.
func runProducer(ctx context.Context, cfg *config.Config, pub sink.Publisher, logger zerolog.Logger) error {
	src, err := source.Open(ctx, cfg.Source)
	if err != nil {
		return err
	}
	defer src.Close()
	stopClose := source.CloseOnDone(ctx, src)
	defer stopClose()

	logger.Info().Str("source", cfg.Source.Kind).Msg("GPS source opened")

	reader := novatel.NewReader(src,
		novatel.WithLogger(logger),
		novatel.WithMaxPayload(cfg.Source.MaxPayload),
	)
	sinks := sink.Multi{
		sink.NewMQTT(pub, cfg.Topics, cfg.NMEA.Enable, logger),
		sink.Metrics{Stats: reader.Stats},
		sink.Log{Logger: logger},
	}

	err = reader.Run(ctx, sinks)
	stats := reader.Stats()
	logger.Info().
		Uint64("frames", stats.Frames).
		Uint64("dropped", stats.Dropped).
		Uint64("skipped_bytes", stats.SkippedBytes).
		Msg("GPS producer stopped")

	// Closing the source on shutdown surfaces as a read error.
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

func serveMetrics(ctx context.Context, addr string, logger zerolog.Logger) {
	metrics.RegisterMetrics()
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	go func() {
		logger.Info().Str("addr", addr).Msg("metrics listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics server error")
		}
	}()
}
