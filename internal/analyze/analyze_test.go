// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package analyze

import (
	"bufio"
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/novatel_gps/internal/novatel"
)

func capture(t *testing.T) []byte {
	t.Helper()
	h := novatel.Header{Week: 2345, Milliseconds: 500, Sequence: 1}
	pos, err := novatel.EncodeMessage(h, &novatel.BestPos{
		PositionType:         novatel.PositionWAAS,
		Latitude:             10.5,
		Longitude:            20.25,
		SatellitesTracked:    9,
		SatellitesInSolution: 7,
	})
	require.NoError(t, err)
	vel, err := novatel.EncodeMessage(h, &novatel.BestVel{HorizontalSpeed: 1, TrackOverGround: 0})
	require.NoError(t, err)
	bad := append([]byte(nil), vel...)
	bad[len(bad)-1] ^= 0x01
	other, err := novatel.EncodeFrame(novatel.Header{MessageID: 7}, []byte{1, 2, 3, 4})
	require.NoError(t, err)

	var b []byte
	b = append(b, 0x01, 0x02)
	b = append(b, pos...)
	b = append(b, bad...)
	b = append(b, other...)
	b = append(b, vel...)
	return b
}

func TestStreamText(t *testing.T) {
	var out bytes.Buffer
	stats, err := Stream(context.Background(), bytes.NewReader(capture(t)), &out, Options{})
	require.NoError(t, err)
	require.Equal(t, novatel.Stats{Frames: 3, Dropped: 1, SkippedBytes: 2}, stats)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	require.True(t, strings.HasPrefix(lines[0], "BESTPOS "))
	require.Contains(t, lines[0], "fix=SBAS_FIX svs=7/9")
	require.Equal(t, "DROP checksum_mismatch bytes=76", lines[1])
	require.Contains(t, lines[2], "MSG7")
	require.Contains(t, lines[2], "len=4 (not decoded)")
	require.True(t, strings.HasPrefix(lines[3], "BESTVEL "))
	require.Equal(t, "frames=3 dropped=1 skipped_bytes=2", lines[4])
}

func TestStreamJSON(t *testing.T) {
	var out bytes.Buffer
	_, err := Stream(context.Background(), bytes.NewReader(capture(t)), &out, Options{JSON: true})
	require.NoError(t, err)

	var records []map[string]any
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		records = append(records, rec)
	}
	require.Len(t, records, 4)
	require.Equal(t, "frame", records[0]["type"])
	require.Equal(t, "BESTPOS", records[0]["name"])
	msg := records[0]["message"].(map[string]any)
	require.Equal(t, 10.5, msg["lat"])
	require.Equal(t, "drop", records[1]["type"])
	require.Equal(t, "checksum_mismatch", records[1]["reason"])
	require.Equal(t, "BESTVEL", records[3]["name"])
}

func TestHex(t *testing.T) {
	frame := capture(t)[2:]
	s := hex.EncodeToString(frame[:40]) + "\n  " + hex.EncodeToString(frame[40:])

	var out bytes.Buffer
	stats, err := Hex(context.Background(), s, &out, Options{})
	require.NoError(t, err)
	require.Equal(t, uint64(3), stats.Frames)

	_, err = Hex(context.Background(), "zz", &out, Options{})
	require.Error(t, err)
}
