// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package novatel

// crcPolynomial is the reversed CRC-32 polynomial used by OEM receivers.
const crcPolynomial = 0xEDB88320

// CRC32Step runs the eight shift/xor rounds for a single table index.
func CRC32Step(partial uint32) uint32 {
	crc := partial
	for i := 0; i < 8; i++ {
		if crc&1 != 0 {
			crc = (crc >> 1) ^ crcPolynomial
		} else {
			crc >>= 1
		}
	}
	return crc
}

// ComputeCRC32 returns the block CRC the receiver appends to every binary log.
//
// The accumulator starts at zero and there is no final inversion, so the
// result differs from hash/crc32.ChecksumIEEE for the same input.
func ComputeCRC32(data []byte) uint32 {
	var crc uint32
	for _, b := range data {
		crc = (crc >> 8) ^ CRC32Step((crc^uint32(b))&0xFF)
	}
	return crc
}

// VerifyChecksum reports whether received matches the CRC of data
// (sync + header + payload).
func VerifyChecksum(data []byte, received uint32) bool {
	return ComputeCRC32(data) == received
}
