// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package novatel

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseHeaderFieldOffsets(t *testing.T) {
	raw, err := hex.DecodeString("1C2A0080204800000090B429090D0C0B0A200000023412783F")
	require.NoError(t, err)
	require.Len(t, raw, HeaderLength)

	h, err := ParseHeader(raw)
	require.NoError(t, err)
	require.Equal(t, Header{
		HeaderLength:    28,
		MessageID:       MessageBestPos,
		MessageType:     -128,
		PortAddress:     0x20,
		MessageLength:   72,
		Sequence:        0,
		IdleTime:        0x90,
		TimeStatus:      180,
		Week:            2345,
		Milliseconds:    0x0A0B0C0D,
		ReceiverStatus:  0x02000020,
		Reserved:        0x1234,
		SoftwareVersion: 0x3F78,
	}, h)
}

func TestParseHeaderShortInput(t *testing.T) {
	_, err := ParseHeader(make([]byte, HeaderLength-1))
	require.ErrorIs(t, err, ErrMalformedHeader)

	_, err = ParseHeader(nil)
	require.ErrorIs(t, err, ErrMalformedHeader)
}

func TestEncodeHeaderRoundTrip(t *testing.T) {
	h := sampleHeader()
	h.HeaderLength = FullHeaderLength
	h.MessageID = MessageBestVel
	h.MessageLength = 44

	got, err := ParseHeader(EncodeHeader(h))
	require.NoError(t, err)
	require.Equal(t, h, got)
}

func TestValidateHeaderLength(t *testing.T) {
	h := Header{HeaderLength: 28}
	require.True(t, ValidateHeaderLength(h, 25))
	require.False(t, ValidateHeaderLength(h, 24))
	require.False(t, ValidateHeaderLength(Header{HeaderLength: 30}, 25))
}

func TestHeaderGPSTime(t *testing.T) {
	h := Header{Week: 2000, Milliseconds: 3_600_000}
	want := time.Date(1980, time.January, 6, 1, 0, 0, 0, time.UTC).Add(2000 * 7 * 24 * time.Hour)
	require.Equal(t, want, h.GPSTime())
}
