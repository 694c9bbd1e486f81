// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package novatel

import (
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCRC32StepMatchesReflectedTable(t *testing.T) {
	for i := uint32(0); i < 256; i++ {
		require.Equalf(t, crc32.IEEETable[i], CRC32Step(i), "index %d", i)
	}
}

func TestComputeCRC32ZeroInitNoFinalXor(t *testing.T) {
	data := []byte("123456789")
	// crc32.Update inverts on the way in and out; undo both to get the raw fold.
	want := ^crc32.Update(0xFFFFFFFF, crc32.IEEETable, data)
	require.Equal(t, want, ComputeCRC32(data))
	require.NotEqual(t, crc32.ChecksumIEEE(data), ComputeCRC32(data))
	require.Zero(t, ComputeCRC32(nil))
}

func TestComputeCRC32Deterministic(t *testing.T) {
	data := mustFrame(t, sampleHeader(), sampleBestPos())
	first := ComputeCRC32(data)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, ComputeCRC32(data))
	}
}

func TestVerifyChecksum(t *testing.T) {
	frame := mustFrame(t, sampleHeader(), sampleBestVel())
	body := frame[:len(frame)-CRCLength]
	crc := binary.LittleEndian.Uint32(frame[len(body):])

	require.True(t, VerifyChecksum(body, crc))
	require.False(t, VerifyChecksum(body, crc^1))
}

func TestVerifyChecksumDetectsSingleByteCorruption(t *testing.T) {
	frame := mustFrame(t, sampleHeader(), sampleBestPos())
	n := len(frame) - CRCLength
	crc := binary.LittleEndian.Uint32(frame[n:])

	for i := 0; i < len(frame); i++ {
		for _, mask := range []byte{0x01, 0x80, 0xFF} {
			corrupt := append([]byte(nil), frame...)
			corrupt[i] ^= mask
			got := VerifyChecksum(corrupt[:n], binary.LittleEndian.Uint32(corrupt[n:]))
			require.Falsef(t, got, "corruption at byte %d mask 0x%02X went undetected", i, mask)
		}
	}
	require.True(t, VerifyChecksum(frame[:n], crc))
}
