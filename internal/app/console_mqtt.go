package app

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	nmea "github.com/adrianmo/go-nmea"
	"github.com/rs/zerolog/log"

	"github.com/relabs-tech/novatel_gps/internal/config"
	"github.com/relabs-tech/novatel_gps/internal/gps"
	"github.com/relabs-tech/novatel_gps/internal/sink"
)

// RunConsoleMQTT subscribes to the GPS topics and prints one line per
// message until Ctrl+C.
func RunConsoleMQTT() error {
	cfg := config.Get()
	if cfg == nil {
		return fmt.Errorf("config not initialised")
	}

	client, err := connectMQTT(cfg.MQTT.Broker, cfg.MQTT.ClientIDConsole)
	if err != nil {
		return err
	}

	subs := []struct {
		topic  string
		format func([]byte) (string, error)
	}{
		{cfg.Topics.Position, formatFixLine},
		{cfg.Topics.Status, formatStatusLine},
		{cfg.Topics.Velocity, formatTwistLine},
		{cfg.Topics.TimeRef, formatTimeRefLine},
		{cfg.Topics.NMEA, formatNMEALine},
		{cfg.Topics.Dropped, formatDroppedLine},
	}
	for _, s := range subs {
		format, topic := s.format, s.topic
		err := subscribe(client, topic, cfg.MQTT.QoS, func(payload []byte) {
			line, err := format(payload)
			if err != nil {
				log.Warn().Err(err).Str("topic", topic).Msg("console: payload decode error")
				return
			}
			fmt.Println(line)
		})
		if err != nil {
			return err
		}
	}

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("console: shutting down")
	client.Disconnect(250)
	return nil
}

func formatFixLine(payload []byte) (string, error) {
	var f gps.NavSatFix
	if err := json.Unmarshal(payload, &f); err != nil {
		return "", fmt.Errorf("fix: %w", err)
	}
	return fmt.Sprintf(
		"[FIX ]  status=%2d lat=%.8f lon=%.8f alt=%.3f  std=(%.3f, %.3f, %.3f)",
		f.Status.Status, f.Latitude, f.Longitude, f.Altitude,
		f.PositionCovariance[0], f.PositionCovariance[4], f.PositionCovariance[8],
	), nil
}

func formatStatusLine(payload []byte) (string, error) {
	var s gps.GPSStatus
	if err := json.Unmarshal(payload, &s); err != nil {
		return "", fmt.Errorf("status: %w", err)
	}
	return fmt.Sprintf(
		"[STAT]  sats used=%d visible=%d  sol_status=%d pos_type=%d",
		s.SatellitesUsed, s.SatellitesVisible, s.Status, s.PositionSource,
	), nil
}

func formatTwistLine(payload []byte) (string, error) {
	var tw gps.Twist
	if err := json.Unmarshal(payload, &tw); err != nil {
		return "", fmt.Errorf("velocity: %w", err)
	}
	return fmt.Sprintf("[VEL ]  vx=%7.3f vy=%7.3f", tw.LinearX, tw.LinearY), nil
}

func formatTimeRefLine(payload []byte) (string, error) {
	var tr gps.TimeReference
	if err := json.Unmarshal(payload, &tr); err != nil {
		return "", fmt.Errorf("time_ref: %w", err)
	}
	return fmt.Sprintf("[TIME]  host=%s source=%s", tr.Time.Format("15:04:05.000"), tr.Source), nil
}

func formatNMEALine(payload []byte) (string, error) {
	s, err := nmea.Parse(strings.TrimSpace(string(payload)))
	if err != nil {
		return "", fmt.Errorf("nmea: %w", err)
	}
	switch m := s.(type) {
	case nmea.GGA:
		return fmt.Sprintf(
			"[NMEA]  GGA time=%s lat=%.6f lon=%.6f quality=%s sats=%d alt=%.1f",
			m.Time, m.Latitude, m.Longitude, m.FixQuality, m.NumSatellites, m.Altitude,
		), nil
	case nmea.VTG:
		return fmt.Sprintf(
			"[NMEA]  VTG track=%.1f° speed=%.2fkn %.2fkm/h mode=%s",
			m.TrueTrack, m.GroundSpeedKnots, m.GroundSpeedKPH, m.FFAMode,
		), nil
	default:
		return fmt.Sprintf("[NMEA]  %s", s.String()), nil
	}
}

func formatDroppedLine(payload []byte) (string, error) {
	var d sink.DroppedFrame
	if err := json.Unmarshal(payload, &d); err != nil {
		return "", fmt.Errorf("dropped: %w", err)
	}
	return fmt.Sprintf("[DROP]  reason=%s bytes=%d", d.Reason, d.Bytes), nil
}
