// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package analyze renders a raw NovAtel capture as text or JSON lines.
package analyze

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/relabs-tech/novatel_gps/internal/novatel"
)

// Options controls the output format.
type Options struct {
	JSON       bool
	MaxPayload int
	Logger     zerolog.Logger
}

// Record is one JSON output line.
type Record struct {
	Type    string          `json:"type"` // "frame" or "drop"
	Name    string          `json:"name,omitempty"`
	Header  *novatel.Header `json:"header,omitempty"`
	Message novatel.Message `json:"message,omitempty"`
	Reason  string          `json:"reason,omitempty"`
	Raw     string          `json:"raw,omitempty"`
}

// Stream decodes src until it ends and writes one line per frame outcome
// followed by a summary line.
func Stream(ctx context.Context, src io.Reader, w io.Writer, opts Options) (novatel.Stats, error) {
	r := novatel.NewReader(src,
		novatel.WithLogger(opts.Logger),
		novatel.WithMaxPayload(opts.MaxPayload),
	)
	p := &printer{w: w, json: opts.JSON}
	if p.json {
		p.enc = json.NewEncoder(w)
	}
	err := r.Run(ctx, p)
	stats := r.Stats()
	if p.err != nil {
		return stats, p.err
	}
	if err != nil {
		return stats, err
	}
	if !opts.JSON {
		_, err = fmt.Fprintf(w, "frames=%d dropped=%d skipped_bytes=%d\n", stats.Frames, stats.Dropped, stats.SkippedBytes)
	}
	return stats, err
}

// Hex decodes a hex string, ignoring whitespace.
func Hex(ctx context.Context, s string, w io.Writer, opts Options) (novatel.Stats, error) {
	raw, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	if err != nil {
		return novatel.Stats{}, fmt.Errorf("decode hex: %w", err)
	}
	return Stream(ctx, bytes.NewReader(raw), w, opts)
}

type printer struct {
	w    io.Writer
	enc  *json.Encoder
	json bool
	err  error
}

func (p *printer) OnFrame(f novatel.Frame) {
	if p.err != nil {
		return
	}
	if p.json {
		h := f.Header
		p.err = p.enc.Encode(Record{Type: "frame", Name: h.MessageID.String(), Header: &h, Message: f.Message})
		return
	}
	_, p.err = fmt.Fprintln(p.w, describe(f))
}

func (p *printer) OnDroppedFrame(reason novatel.DropReason, raw []byte) {
	if p.err != nil {
		return
	}
	if p.json {
		p.err = p.enc.Encode(Record{Type: "drop", Reason: reason.String(), Raw: hex.EncodeToString(raw)})
		return
	}
	_, p.err = fmt.Fprintf(p.w, "DROP %s bytes=%d\n", reason, len(raw))
}

func describe(f novatel.Frame) string {
	h := f.Header
	prefix := fmt.Sprintf("%-8s seq=%d week=%d ms=%d", h.MessageID, h.Sequence, h.Week, h.Milliseconds)
	switch m := f.Message.(type) {
	case *novatel.BestPos:
		return fmt.Sprintf("%s lat=%.9f lon=%.9f hgt=%.3f fix=%s svs=%d/%d",
			prefix, m.Latitude, m.Longitude, m.Height, m.FixQuality(), m.SatellitesUsed(), m.SatellitesVisible())
	case *novatel.BestVel:
		vx, vy := m.PlanarVelocity()
		return fmt.Sprintf("%s hor_spd=%.3f trk_gnd=%.2f vx=%.3f vy=%.3f",
			prefix, m.HorizontalSpeed, m.TrackOverGround, vx, vy)
	default:
		return fmt.Sprintf("%s len=%d (not decoded)", prefix, h.MessageLength)
	}
}
