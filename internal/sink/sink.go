// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package sink holds the consumers of reader output.
package sink

import "github.com/relabs-tech/novatel_gps/internal/novatel"

// Multi fans every outcome out to each sink in order.
type Multi []novatel.Sink

func (m Multi) OnFrame(f novatel.Frame) {
	for _, s := range m {
		s.OnFrame(f)
	}
}

func (m Multi) OnDroppedFrame(reason novatel.DropReason, raw []byte) {
	for _, s := range m {
		s.OnDroppedFrame(reason, raw)
	}
}
