// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/relabs-tech/novatel_gps/internal/gps"
	"github.com/relabs-tech/novatel_gps/internal/sink"
)

// Stream kinds, used as the websocket envelope type.
const (
	kindPosition = "position"
	kindStatus   = "status"
	kindVelocity = "velocity"
	kindDropped  = "dropped"
)

// gpsState keeps the latest message of each kind seen on MQTT.
type gpsState struct {
	mu sync.RWMutex

	position *gps.NavSatFix
	status   *gps.GPSStatus
	velocity *gps.Twist
	lastDrop *sink.DroppedFrame
	drops    map[string]uint64
}

func newGPSState() *gpsState {
	return &gpsState{drops: make(map[string]uint64)}
}

// apply decodes payload as kind and stores it.
func (s *gpsState) apply(kind string, payload []byte) error {
	switch kind {
	case kindPosition:
		var v gps.NavSatFix
		if err := json.Unmarshal(payload, &v); err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
		s.mu.Lock()
		s.position = &v
		s.mu.Unlock()
	case kindStatus:
		var v gps.GPSStatus
		if err := json.Unmarshal(payload, &v); err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
		s.mu.Lock()
		s.status = &v
		s.mu.Unlock()
	case kindVelocity:
		var v gps.Twist
		if err := json.Unmarshal(payload, &v); err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
		s.mu.Lock()
		s.velocity = &v
		s.mu.Unlock()
	case kindDropped:
		var v sink.DroppedFrame
		if err := json.Unmarshal(payload, &v); err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
		s.mu.Lock()
		s.lastDrop = &v
		s.drops[v.Reason]++
		s.mu.Unlock()
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}
	return nil
}

// statusView is the body of GET /api/gps/status.
type statusView struct {
	Status   *gps.GPSStatus     `json:"status"`
	LastDrop *sink.DroppedFrame `json:"last_drop,omitempty"`
	Drops    map[string]uint64  `json:"drops"`
}

// snapshot is sent to every websocket client on connect.
type snapshot struct {
	Position *gps.NavSatFix `json:"position"`
	Velocity *gps.Twist     `json:"velocity"`
	statusView
}

func (s *gpsState) Position() (gps.NavSatFix, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.position == nil {
		return gps.NavSatFix{}, false
	}
	return *s.position, true
}

func (s *gpsState) Velocity() (gps.Twist, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.velocity == nil {
		return gps.Twist{}, false
	}
	return *s.velocity, true
}

func (s *gpsState) Status() statusView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statusLocked()
}

func (s *gpsState) statusLocked() statusView {
	drops := make(map[string]uint64, len(s.drops))
	for k, v := range s.drops {
		drops[k] = v
	}
	return statusView{Status: s.status, LastDrop: s.lastDrop, Drops: drops}
}

func (s *gpsState) Snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		Position:   s.position,
		Velocity:   s.velocity,
		statusView: s.statusLocked(),
	}
}
