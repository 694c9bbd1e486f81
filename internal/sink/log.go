// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sink

import (
	"github.com/rs/zerolog"

	"github.com/relabs-tech/novatel_gps/internal/novatel"
)

// Log writes one line per frame at debug level.
type Log struct {
	Logger zerolog.Logger
}

func (l Log) OnFrame(f novatel.Frame) {
	ev := l.Logger.Debug().
		Str("msg_type", f.Header.MessageID.String()).
		Uint16("seq", f.Header.Sequence).
		Uint16("week", f.Header.Week).
		Int32("ms", f.Header.Milliseconds)
	switch m := f.Message.(type) {
	case *novatel.BestPos:
		ev = ev.Float64("lat", m.Latitude).
			Float64("lon", m.Longitude).
			Float64("height", m.Height).
			Str("fix", m.FixQuality().String()).
			Int("svs", m.SatellitesUsed())
	case *novatel.BestVel:
		ev = ev.Float64("hor_spd", m.HorizontalSpeed).
			Float64("trk_gnd", m.TrackOverGround)
	}
	ev.Msg("frame")
}

// Drops are already logged by the reader.
func (Log) OnDroppedFrame(novatel.DropReason, []byte) {}
