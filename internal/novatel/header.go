// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package novatel

import (
	"fmt"
	"time"
)

const (
	// SyncLength is the size of the 0xAA 0x44 0x12 preamble.
	SyncLength = 3
	// HeaderLength is the size of the binary header after the preamble.
	HeaderLength = 25
	// FullHeaderLength is what the header_length field carries (preamble included).
	FullHeaderLength = SyncLength + HeaderLength
	// CRCLength is the size of the trailing checksum.
	CRCLength = 4
)

// Sync is the frame preamble.
var Sync = [SyncLength]byte{0xAA, 0x44, 0x12}

// gpsEpoch is the start of GPS week 0.
var gpsEpoch = time.Date(1980, time.January, 6, 0, 0, 0, 0, time.UTC)

// Header is the decoded binary log header.
type Header struct {
	HeaderLength    uint8     `json:"header_length"`
	MessageID       MessageID `json:"message_id"`
	MessageType     int8      `json:"message_type"`
	PortAddress     uint8     `json:"port_address"`
	MessageLength   uint16    `json:"message_length"`
	Sequence        uint16    `json:"sequence"`
	IdleTime        uint8     `json:"idle_time"`
	TimeStatus      uint8     `json:"time_status"`
	Week            uint16    `json:"week"`
	Milliseconds    int32     `json:"milliseconds"`
	ReceiverStatus  uint32    `json:"receiver_status"`
	Reserved        uint16    `json:"reserved"`
	SoftwareVersion uint16    `json:"software_version"`
}

// ParseHeader decodes the 25 header bytes that follow the sync preamble.
// Extra trailing bytes are ignored.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderLength {
		return Header{}, fmt.Errorf("%w: need %d bytes, got %d", ErrMalformedHeader, HeaderLength, len(b))
	}
	l := HeaderLayout
	return Header{
		HeaderLength:    l.u8(b, "header_length"),
		MessageID:       MessageID(l.u16(b, "message_id")),
		MessageType:     l.i8(b, "message_type"),
		PortAddress:     l.u8(b, "port_address"),
		MessageLength:   l.u16(b, "message_length"),
		Sequence:        l.u16(b, "sequence"),
		IdleTime:        l.u8(b, "idle_time"),
		TimeStatus:      l.u8(b, "time_status"),
		Week:            l.u16(b, "week"),
		Milliseconds:    l.i32(b, "milliseconds"),
		ReceiverStatus:  l.u32(b, "receiver_status"),
		Reserved:        l.u16(b, "reserved"),
		SoftwareVersion: l.u16(b, "software_version"),
	}, nil
}

// ValidateHeaderLength reports whether consumed header bytes agree with the
// header_length field, which counts the preamble too.
func ValidateHeaderLength(h Header, consumed int) bool {
	return consumed == int(h.HeaderLength)-SyncLength
}

// GPSTime converts week and milliseconds-of-week to a time on the GPS scale.
// Leap seconds are not applied.
func (h Header) GPSTime() time.Time {
	week := time.Duration(h.Week) * 7 * 24 * time.Hour
	return gpsEpoch.Add(week + time.Duration(h.Milliseconds)*time.Millisecond)
}
