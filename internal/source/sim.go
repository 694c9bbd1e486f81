// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package source

import (
	"io"
	"math"
	"sync"
	"time"

	"github.com/relabs-tech/novatel_gps/internal/novatel"
)

// Simulated track: a circle around a fixed base at walking-pace speed.
const (
	simBaseLat      = 40.4168
	simBaseLon      = -3.7038
	simBaseHeight   = 667.0
	simRadiusMeters = 25.0
	simPeriod       = 120.0 // seconds per lap
	simStartWeek    = 2345
	metersPerDegLat = 111320.0
)

// Simulator produces a live BESTPOS/BESTVEL stream without a receiver.
// Every step emits one BESTPOS frame followed by one BESTVEL frame.
type Simulator struct {
	pr *io.PipeReader
	pw *io.PipeWriter

	interval time.Duration
	seq      uint16
	stop     chan struct{}
	once     sync.Once
}

// NewSimulator starts emitting one step per interval. Close stops it and
// makes pending reads return io.EOF.
func NewSimulator(interval time.Duration) *Simulator {
	pr, pw := io.Pipe()
	s := &Simulator{
		pr:       pr,
		pw:       pw,
		interval: interval,
		stop:     make(chan struct{}),
	}
	go s.loop()
	return s
}

func (s *Simulator) Read(p []byte) (int, error) { return s.pr.Read(p) }

func (s *Simulator) Close() error {
	s.once.Do(func() {
		close(s.stop)
		_ = s.pw.Close()
	})
	return nil
}

func (s *Simulator) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	elapsed := time.Duration(0)
	for {
		b, err := s.step(elapsed)
		if err != nil {
			_ = s.pw.CloseWithError(err)
			return
		}
		if _, err := s.pw.Write(b); err != nil {
			return
		}
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			elapsed += s.interval
		}
	}
}

// step encodes the two frames describing the track at elapsed.
func (s *Simulator) step(elapsed time.Duration) ([]byte, error) {
	pos, vel := simState(elapsed.Seconds())

	h := novatel.Header{
		PortAddress:     0x20,
		TimeStatus:      180, // FINESTEERING
		Week:            simStartWeek,
		Milliseconds:    int32(elapsed / time.Millisecond),
		SoftwareVersion: 1,
	}

	h.Sequence = s.seq
	s.seq++
	posFrame, err := novatel.EncodeMessage(h, pos)
	if err != nil {
		return nil, err
	}
	h.Sequence = s.seq
	s.seq++
	velFrame, err := novatel.EncodeMessage(h, vel)
	if err != nil {
		return nil, err
	}
	return append(posFrame, velFrame...), nil
}

func simState(t float64) (*novatel.BestPos, *novatel.BestVel) {
	angle := 2 * math.Pi * t / simPeriod
	north := simRadiusMeters * math.Cos(angle)
	east := simRadiusMeters * math.Sin(angle)
	metersPerDegLon := metersPerDegLat * math.Cos(simBaseLat*math.Pi/180)

	pos := &novatel.BestPos{
		SolutionStatus:       novatel.SolutionComputed,
		PositionType:         novatel.PositionNarrowInt,
		Latitude:             simBaseLat + north/metersPerDegLat,
		Longitude:            simBaseLon + east/metersPerDegLon,
		Height:               simBaseHeight,
		Undulation:           51.2,
		DatumID:              61, // WGS84
		LatitudeStdDev:       0.012,
		LongitudeStdDev:      0.009,
		HeightStdDev:         0.021,
		SatellitesTracked:    14,
		SatellitesInSolution: 12,
	}

	// Tangent of the circle, clockwise from north.
	speed := 2 * math.Pi * simRadiusMeters / simPeriod
	track := math.Mod(angle*180/math.Pi+90, 360)
	vel := &novatel.BestVel{
		SolutionStatus:  novatel.SolutionComputed,
		VelocityType:    novatel.PositionNarrowInt,
		Latency:         0.05,
		HorizontalSpeed: speed,
		TrackOverGround: track,
	}
	return pos, vel
}
