// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package novatel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleHeader() Header {
	return Header{
		MessageType:     0,
		PortAddress:     0x20,
		Sequence:        0,
		IdleTime:        42,
		TimeStatus:      180,
		Week:            2345,
		Milliseconds:    345600250,
		ReceiverStatus:  0x02000020,
		Reserved:        0x7F1D,
		SoftwareVersion: 16248,
	}
}

func sampleBestPos() *BestPos {
	return &BestPos{
		SolutionStatus:             0,
		PositionType:               PositionNarrowInt,
		Latitude:                   51.116375018,
		Longitude:                  -114.038190140,
		Height:                     1064.3428,
		Undulation:                 -16.2712,
		DatumID:                    61,
		LatitudeStdDev:             0.0122,
		LongitudeStdDev:            0.0097,
		HeightStdDev:               0.0239,
		StationID:                  0x30303030,
		DifferentialAge:            1.5,
		SolutionAge:                0.25,
		SatellitesTracked:          20,
		SatellitesInSolution:       17,
		L1Observations:             17,
		MultiFrequencyObservations: 16,
		ExtendedSolutionStatus:     0x06,
		SignalMask:                 0x33,
	}
}

func sampleBestVel() *BestVel {
	return &BestVel{
		SolutionStatus:  0,
		VelocityType:    50,
		Latency:         0.25,
		Age:             1.0,
		HorizontalSpeed: 12.25,
		TrackOverGround: 237.5,
		VerticalSpeed:   -0.125,
	}
}

func mustFrame(t *testing.T, h Header, m Message) []byte {
	t.Helper()
	b, err := EncodeMessage(h, m)
	require.NoError(t, err)
	return b
}

func mustRawFrame(t *testing.T, h Header, payload []byte) []byte {
	t.Helper()
	b, err := EncodeFrame(h, payload)
	require.NoError(t, err)
	return b
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
