// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sink

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"

	"github.com/relabs-tech/novatel_gps/internal/config"
	"github.com/relabs-tech/novatel_gps/internal/gps"
	"github.com/relabs-tech/novatel_gps/internal/novatel"
)

// Publisher delivers one payload to a topic.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

// ClientPublisher publishes through a connected paho client.
type ClientPublisher struct {
	Client  mqtt.Client
	QoS     byte
	Retain  bool
	Timeout time.Duration
}

func (p ClientPublisher) Publish(topic string, payload []byte) error {
	token := p.Client.Publish(topic, p.QoS, p.Retain, payload)
	if p.Timeout > 0 {
		if !token.WaitTimeout(p.Timeout) {
			return fmt.Errorf("publish %s: timed out after %s", topic, p.Timeout)
		}
	} else {
		token.Wait()
	}
	return token.Error()
}

// DroppedFrame is the JSON body published for a discarded frame.
type DroppedFrame struct {
	Time   time.Time `json:"time"`
	Reason string    `json:"reason"`
	Bytes  int       `json:"bytes"`
	Raw    string    `json:"raw"` // hex
}

// MQTT converts decoded logs into downstream messages and publishes them as
// JSON. Empty topics are skipped.
type MQTT struct {
	pub    Publisher
	topics config.TopicsConfig
	nmea   bool
	log    zerolog.Logger
	now    func() time.Time
}

func NewMQTT(pub Publisher, topics config.TopicsConfig, nmea bool, log zerolog.Logger) *MQTT {
	return &MQTT{
		pub:    pub,
		topics: topics,
		nmea:   nmea,
		log:    log,
		now:    time.Now,
	}
}

func (s *MQTT) OnFrame(f novatel.Frame) {
	now := s.now()
	switch m := f.Message.(type) {
	case *novatel.BestPos:
		fix, status := gps.FromBestPos(now, m)
		s.publishJSON(s.topics.Position, fix)
		s.publishJSON(s.topics.Status, status)
		s.publishJSON(s.topics.TimeRef, gps.FromHeader(now, f.Header))
		if s.nmea {
			s.publish(s.topics.NMEA, []byte(gps.FormatGGA(now, m)))
		}
	case *novatel.BestVel:
		s.publishJSON(s.topics.Velocity, gps.FromBestVel(now, m))
		if s.nmea {
			s.publish(s.topics.NMEA, []byte(gps.FormatVTG(m)))
		}
	default:
		s.log.Debug().Uint16("msg_id", uint16(f.Header.MessageID)).Msg("message ID not recognized")
	}
}

func (s *MQTT) OnDroppedFrame(reason novatel.DropReason, raw []byte) {
	s.publishJSON(s.topics.Dropped, DroppedFrame{
		Time:   s.now(),
		Reason: reason.String(),
		Bytes:  len(raw),
		Raw:    hex.EncodeToString(raw),
	})
}

func (s *MQTT) publishJSON(topic string, v any) {
	if topic == "" {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		s.log.Error().Err(err).Str("topic", topic).Msg("JSON marshal error")
		return
	}
	s.publish(topic, payload)
}

func (s *MQTT) publish(topic string, payload []byte) {
	if topic == "" {
		return
	}
	if err := s.pub.Publish(topic, payload); err != nil {
		s.log.Warn().Err(err).Str("topic", topic).Msg("publish error")
	}
}
