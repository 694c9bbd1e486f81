// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sink

import (
	"github.com/relabs-tech/novatel_gps/internal/metrics"
	"github.com/relabs-tech/novatel_gps/internal/novatel"
)

// Metrics feeds the prometheus collectors. Stats, when set, is polled after
// every outcome to publish the skipped-byte total.
type Metrics struct {
	Stats func() novatel.Stats
}

func (m Metrics) OnFrame(f novatel.Frame) {
	metrics.RecordFrame(f.Header.MessageID.String())
	if p, ok := f.Message.(*novatel.BestPos); ok {
		metrics.RecordFix(int8(p.FixQuality()), p.SatellitesUsed())
	}
	m.syncStats()
}

func (m Metrics) OnDroppedFrame(reason novatel.DropReason, _ []byte) {
	metrics.RecordDrop(reason.String())
	m.syncStats()
}

func (m Metrics) syncStats() {
	if m.Stats != nil {
		metrics.SetSkippedBytes(m.Stats().SkippedBytes)
	}
}
